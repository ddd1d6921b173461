package storage

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/cascade/pkg/domain/identity"
	"gopkg.in/yaml.v3"
)

// SaveTeam persists the organization directory to team.yaml.
func (r *FilesystemRepository) SaveTeam(d *identity.Directory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveYAML(TeamFile, d)
}

// LoadTeam loads the organization directory; a missing file yields an
// empty directory.
func (r *FilesystemRepository) LoadTeam() (*identity.Directory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	path, err := r.ResolvePath(TeamFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &identity.Directory{}, nil
		}
		return nil, fmt.Errorf("failed to read team file: %w", err)
	}

	var d identity.Directory
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team file: %w", err)
	}
	return &d, nil
}
