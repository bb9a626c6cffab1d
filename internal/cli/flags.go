package cli

import "dtp/internal/config"

// Flags holds command-line flags
type Flags struct {
	TestPath   string
	Manifest   string
	NameFilter string
	TestCases  bool
	FailFast   bool
	OnlyFailed bool
	WithDeps   bool
	Prepare    bool
	Fresh      bool
	OpenReview bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		TestPath:   f.TestPath,
		Manifest:   f.Manifest,
		NameFilter: f.NameFilter,
		TestCases:  f.TestCases,
		FailFast:   f.FailFast,
		OnlyFailed: f.OnlyFailed,
		WithDeps:   f.WithDeps,
		Prepare:    f.Prepare,
		Fresh:      f.Fresh,
		OpenReview: f.OpenReview,
	}
}
