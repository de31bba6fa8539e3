package identity

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/yhekr/abexp/types"
)

// Hostname reads the machine identifier from os.Hostname.
type Hostname struct{}

var _ types.MachineIDSource = Hostname{}

// MachineID returns the host name.
func (Hostname) MachineID() (string, error) {
	name, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("%w: hostname: %w", types.ErrMachineID, err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty hostname", types.ErrMachineID)
	}

	return name, nil
}

// Static is a fixed machine identifier.
type Static string

var _ types.MachineIDSource = Static("")

// MachineID returns the fixed identifier.
func (s Static) MachineID() (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty static identifier", types.ErrMachineID)
	}

	return string(s), nil
}

// InstallationFile persists a random installation UUID in a file.
//
// The first call creates the file (and its directory) with a new UUID; later
// calls, including from other processes, read it back. Unlike the hostname
// the identifier survives machine renames and differs between installations
// on a shared host.
type InstallationFile struct {
	Path string
}

var _ types.MachineIDSource = InstallationFile{}

// MachineID returns the persisted UUID, creating it when missing.
func (f InstallationFile) MachineID() (string, error) {
	if f.Path == "" {
		return "", fmt.Errorf("%w: installation file path is empty", types.ErrMachineID)
	}

	data, err := os.ReadFile(f.Path)
	if err == nil {
		id, parseErr := uuid.ParseBytes([]byte(strings.TrimSpace(string(data))))
		if parseErr != nil {
			return "", fmt.Errorf("%w: %s: %w", types.ErrMachineID, f.Path, parseErr)
		}

		return id.String(), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: read %s: %w", types.ErrMachineID, f.Path, err)
	}

	return f.create()
}

func (f InstallationFile) create() (string, error) {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return "", fmt.Errorf("%w: create directory: %w", types.ErrMachineID, err)
	}

	id := uuid.NewString()

	// O_EXCL makes concurrent first runs agree on a single identifier.
	file, err := os.OpenFile(f.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return f.MachineID()
	}
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %w", types.ErrMachineID, f.Path, err)
	}
	defer file.Close()

	if _, err := file.WriteString(id + "\n"); err != nil {
		return "", fmt.Errorf("%w: write %s: %w", types.ErrMachineID, f.Path, err)
	}

	return id, nil
}
