// Package commands provides the high-level command implementations for
// wflink. Each command lives in its own subdirectory:
//   - link/    - LinkAssets moves unlinked assets into the repository
//   - status/  - Status reports pending assets and the manifest line
//   - locate/  - Locate finds an installed workflow by bundle id
//   - internal/ - workspace resolution shared by all three
//
// This file re-exports the command functions so the CLI imports one package.
package commands

import (
	"context"

	"github.com/arthur-debert/wflink/pkg/commands/link"
	"github.com/arthur-debert/wflink/pkg/commands/locate"
	"github.com/arthur-debert/wflink/pkg/commands/status"
	"github.com/arthur-debert/wflink/pkg/types"
)

// LinkAssets links the unlinked assets of the repository's installed workflow.
type LinkAssetsOptions = link.LinkAssetsOptions

func LinkAssets(ctx context.Context, opts LinkAssetsOptions) (*types.LinkResult, error) {
	return link.LinkAssets(ctx, opts)
}

// Status reports what LinkAssets would do.
type StatusOptions = status.StatusOptions

func Status(ctx context.Context, opts StatusOptions) (*types.StatusResult, error) {
	return status.Status(ctx, opts)
}

// Locate finds an installed workflow by bundle id.
type LocateOptions = locate.LocateOptions

func Locate(ctx context.Context, opts LocateOptions) (*types.LocateResult, error) {
	return locate.Locate(ctx, opts)
}
