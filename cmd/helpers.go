package cmd

import (
	"github.com/mj1618/winhint/internal/config"
	"github.com/mj1618/winhint/internal/hint"
	"github.com/mj1618/winhint/internal/platform"
	_ "github.com/mj1618/winhint/internal/platform/stdin" // registers the stdin backend
)

// buildTable lists the backend's windows and assigns each a placed hint.
func buildTable(cfg config.Config, lister platform.WindowLister, opts platform.ListOptions, m hint.Measurer) (*hint.Table, error) {
	windows, err := lister.ListWindows(opts)
	if err != nil {
		return nil, err
	}
	return hint.BuildTable(windows, cfg.Chars, cfg.Margin, m)
}

func listOptions(allDesktops bool, title string) platform.ListOptions {
	return platform.ListOptions{AllDesktops: allDesktops, Title: title}
}
