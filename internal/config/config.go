package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/oninross/elementara/internal/game"
)

type creatureEntry struct {
	Name string `json:"name"`
	// Stage is zero-based in the config file (0 = basic form).
	Stage      int    `json:"stage"`
	HP         int    `json:"hp"`
	Weakness   string `json:"weakness"`
	Resistance string `json:"resistance"`
}

type lineEntry struct {
	Line      string          `json:"line"`
	Element   game.Element    `json:"element"`
	Creatures []creatureEntry `json:"creatures"`
}

type rawConfig struct {
	CreatureLines []lineEntry `json:"creature_lines"`
	Server        *struct {
		Address string `json:"address"`
	} `json:"server"`
}

// LoadedConfig contains the creature templates to build the catalog
// from and the server address to bind to.
type LoadedConfig struct {
	Templates     []game.CreatureTemplate
	ServerAddress string
}

// slugID derives the stable template id from a creature name.
func slugID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

func elementOrNone(s string) (game.Element, error) {
	if s == "" || s == "None" {
		return "", nil
	}
	e := game.Element(s)
	if !e.Valid() {
		return "", fmt.Errorf("unknown element %q", s)
	}
	return e, nil
}

// LoadConfig reads the configuration file at path and returns the
// creature templates and server address. It requires the key
// `creature_lines`: an array of evolution lines, each carrying exactly
// three creatures at stages 0..2.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.CreatureLines) == 0 {
		return nil, fmt.Errorf("config file %s: creature_lines is empty (provide a 'creature_lines' array)", path)
	}

	templates := make([]game.CreatureTemplate, 0, len(rc.CreatureLines)*3)
	idSet := make(map[string]struct{}, len(rc.CreatureLines)*3)
	for _, line := range rc.CreatureLines {
		if !line.Element.Valid() {
			return nil, fmt.Errorf("config file %s: line '%s' has unknown element %q", path, line.Line, line.Element)
		}
		if len(line.Creatures) != 3 {
			return nil, fmt.Errorf("config file %s: line '%s' must have exactly 3 creatures, has %d", path, line.Line, len(line.Creatures))
		}

		evolutionLine := make([]string, 0, 3)
		for _, c := range line.Creatures {
			evolutionLine = append(evolutionLine, slugID(c.Name))
		}

		for i, c := range line.Creatures {
			if strings.TrimSpace(c.Name) == "" {
				return nil, fmt.Errorf("config file %s: line '%s' has a creature missing 'name'", path, line.Line)
			}
			if c.Stage != i {
				return nil, fmt.Errorf("config file %s: line '%s' creature '%s' out of stage order (want stage %d, got %d)", path, line.Line, c.Name, i, c.Stage)
			}
			if c.HP <= 0 {
				return nil, fmt.Errorf("config file %s: creature '%s' must have positive hp", path, c.Name)
			}
			weakness, err := elementOrNone(c.Weakness)
			if err != nil {
				return nil, fmt.Errorf("config file %s: creature '%s' weakness: %v", path, c.Name, err)
			}
			resistance, err := elementOrNone(c.Resistance)
			if err != nil {
				return nil, fmt.Errorf("config file %s: creature '%s' resistance: %v", path, c.Name, err)
			}

			id := slugID(c.Name)
			if _, exists := idSet[id]; exists {
				return nil, fmt.Errorf("config file %s: duplicate creature id '%s'", path, id)
			}
			idSet[id] = struct{}{}

			templates = append(templates, game.CreatureTemplate{
				ID:            id,
				Name:          c.Name,
				Element:       line.Element,
				BaseMaxHP:     c.HP,
				Weakness:      weakness,
				Resistance:    resistance,
				Ability:       fmt.Sprintf("%s's %s Burst", c.Name, line.Element),
				Stage:         game.Stage(c.Stage + 1),
				EvolutionLine: evolutionLine,
			})
		}
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	return &LoadedConfig{Templates: templates, ServerAddress: addr}, nil
}
