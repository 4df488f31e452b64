package nix

import "time"

// buildResults is the JSON printed by `nix build --json`.
type buildResults []struct {
	DrvPath string            `json:"drvPath"`
	Outputs map[string]string `json:"outputs"`
}

// pin locates one package version inside nixpkgs.
type pin struct {
	Commit   string `json:"commit"`
	AttrPath string `json:"attr_path"`
}

// pinFile is the on-disk form of a resolved tool, one pin per Nix system.
type pinFile struct {
	Package  string         `json:"package"`
	Version  string         `json:"version"`
	Pins     map[string]pin `json:"pins"`
	Resolved time.Time      `json:"resolved"`
}

// storePathEntry records where a materialized tool lives in the Nix store.
type storePathEntry struct {
	AttrPath  string    `json:"attr_path"`
	Commit    string    `json:"commit"`
	StorePath string    `json:"store_path"`
	Timestamp time.Time `json:"timestamp"`
}

// NixHubResponse is the subset of the NixHub v2/resolve answer npmwrap reads.
type NixHubResponse struct {
	Name    string                    `json:"name"`
	Version string                    `json:"version"`
	Systems map[string]SystemResponse `json:"systems"`
}

// SystemResponse is the NixHub answer for one Nix system.
type SystemResponse struct {
	FlakeInstallable FlakeInstallable `json:"flake_installable"`
}

// FlakeInstallable names the flake and attribute that build the package.
type FlakeInstallable struct {
	Ref      FlakeRef `json:"ref"`
	AttrPath string   `json:"attr_path"`
}

// FlakeRef is the git reference of the nixpkgs flake.
type FlakeRef struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Rev   string `json:"rev"`
}

func (s SystemResponse) pin() pin {
	return pin{Commit: s.FlakeInstallable.Ref.Rev, AttrPath: s.FlakeInstallable.AttrPath}
}
