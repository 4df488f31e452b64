package detector

// Detect exposes detect for testing without a real terminal.
var Detect = detect
