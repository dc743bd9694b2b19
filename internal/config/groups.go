package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/riskibarqy/segment-leaderboard/internal/domain/group"
)

type groupsFile struct {
	Groups []groupEntry `koanf:"groups"`
}

type groupEntry struct {
	ID       int      `koanf:"id"`
	Name     string   `koanf:"name"`
	Athletes []string `koanf:"athletes"`
}

// LoadGroups reads a YAML registry of the form
//
//	groups:
//	  - id: 1
//	    name: Segment of the Week
//	    athletes: [4634808, 2861283]
//
// Athlete order is kept as written. Every group is validated and ids must be
// unique across the file.
func LoadGroups(path string) ([]group.Group, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("groups file path is empty")
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load groups file %s: %w", path, err)
	}

	var raw groupsFile
	if err := k.UnmarshalWithConf("", &raw, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode groups file %s: %w", path, err)
	}
	if len(raw.Groups) == 0 {
		return nil, fmt.Errorf("groups file %s defines no groups", path)
	}

	out := make([]group.Group, 0, len(raw.Groups))
	seen := make(map[int]struct{}, len(raw.Groups))
	for _, entry := range raw.Groups {
		ids := make([]string, 0, len(entry.Athletes))
		for _, id := range entry.Athletes {
			ids = append(ids, strings.TrimSpace(id))
		}
		item := group.Group{
			ID:         entry.ID,
			Name:       strings.TrimSpace(entry.Name),
			AthleteIDs: ids,
		}
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("groups file %s: %w", path, err)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("groups file %s: group %d defined twice", path, item.ID)
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}

	return out, nil
}
