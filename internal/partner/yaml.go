package partner

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// profileFile is the YAML document exchanged by Import and Export.
type profileFile struct {
	Partners []Config `yaml:"partners"`
}

// Import reads partner profiles from r and upserts each into the store.
// It returns the number of profiles written.
func (s *Store) Import(r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("reading profiles: %w", err)
	}

	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("parsing profiles: %w", err)
	}

	for i, cfg := range file.Partners {
		if err := cfg.Validate(); err != nil {
			return i, fmt.Errorf("partner %d (%s): %w", i+1, cfg.Name, err)
		}
		if err := s.Put(cfg); err != nil {
			return i, err
		}
	}
	return len(file.Partners), nil
}

// Export writes all partner profiles to w as YAML.
func (s *Store) Export(w io.Writer) error {
	partners, err := s.List()
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()

	if err := enc.Encode(profileFile{Partners: partners}); err != nil {
		return fmt.Errorf("encoding profiles: %w", err)
	}
	return nil
}
