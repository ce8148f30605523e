// Package detector decides whether a web target runs TYPO3 and gathers what
// the responses reveal about the installation.
package detector

import (
	"context"
	"errors"

	"github.com/aleister1102/typo3enum/internal/httpclient"
	"github.com/aleister1102/typo3enum/internal/models"
)

var (
	// ErrNoMarker means a response was received but carried no TYPO3 signature.
	ErrNoMarker = errors.New("no TYPO3 marker in response")
	// ErrNoInstallPath means the root page had no usable install path reference.
	ErrNoInstallPath = errors.New("no install path reference")
	// ErrRejectedInstallPath means a reference was found but refused.
	ErrRejectedInstallPath = errors.New("install path reference rejected")
	// ErrNoTitle means the login page could not be classified for lack of a title.
	ErrNoTitle = errors.New("login page has no title")
)

// Fetcher issues a GET for base+path. Any HTTP status is a response; only
// transport failures are errors.
type Fetcher interface {
	Fetch(ctx context.Context, base, path string) (*httpclient.HTTPResponse, error)
}

// Probe is one detection step. Check may mutate target.
type Probe interface {
	Name() string
	Check(ctx context.Context, target *models.Target) models.ProbeResult
}

// Probe names as they appear in results and logs.
const (
	RootProbeName        = "root_page"
	DefaultFileProbeName = "default_file"
	ErrorPageProbeName   = "error_page"
	LoginProbeName       = "login_page"
)
