package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/oninross/elementara/internal/game"
)

// ErrTemplateNotFound is returned when a roster references a creature
// id that does not exist in the catalog. This indicates corrupt
// catalog data or a stale id and aborts battle setup.
var ErrTemplateNotFound = errors.New("creature template not found")

// Catalog is the read-only creature roster, indexed for the lookups
// the battle engine needs. Templates come from the server config and
// never change after construction.
type Catalog struct {
	templates []game.CreatureTemplate
	byID      map[string]*game.CreatureTemplate

	// instanceSeq issues battle-instance identities. Instance ids are
	// distinct from template ids so two copies of the same card can be
	// targeted independently by damage events.
	instanceSeq atomic.Uint64
}

// New builds a catalog from the configured templates.
func New(templates []game.CreatureTemplate) *Catalog {
	c := &Catalog{
		templates: templates,
		byID:      make(map[string]*game.CreatureTemplate, len(templates)),
	}
	for i := range c.templates {
		c.byID[c.templates[i].ID] = &c.templates[i]
	}
	return c
}

// All returns every template in catalog order.
func (c *Catalog) All() []game.CreatureTemplate { return c.templates }

// ByID returns the template with the given id.
func (c *Catalog) ByID(id string) (*game.CreatureTemplate, error) {
	t, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	return t, nil
}

// ByStage returns all templates at the given evolution stage.
func (c *Catalog) ByStage(stage game.Stage) []game.CreatureTemplate {
	out := make([]game.CreatureTemplate, 0, len(c.templates)/3)
	for _, t := range c.templates {
		if t.Stage == stage {
			out = append(out, t)
		}
	}
	return out
}

// ByElementAndStage returns all templates matching both filters.
func (c *Catalog) ByElementAndStage(element game.Element, stage game.Stage) []game.CreatureTemplate {
	out := make([]game.CreatureTemplate, 0, 3)
	for _, t := range c.templates {
		if t.Element == element && t.Stage == stage {
			out = append(out, t)
		}
	}
	return out
}

// NextEvolution returns the template one stage above the given
// creature, keyed by its position in the evolution line. Returns nil
// when the creature is already at the final stage or its id is not
// found in its own line (treated as "no further evolution").
func (c *Catalog) NextEvolution(creature *game.CreatureInstance) *game.CreatureTemplate {
	line := creature.EvolutionLine
	idx := -1
	for i, id := range line {
		if id == creature.ID {
			idx = i
			break
		}
	}
	if idx == -1 || idx == len(line)-1 {
		return nil
	}
	next, err := c.ByID(line[idx+1])
	if err != nil {
		return nil
	}
	return next
}

// NewInstance produces a mutable battle instance from a template with
// the given effective max HP. The instance starts at full HP, face
// down, with zero turns survived, and carries a fresh instance id.
func (c *Catalog) NewInstance(t *game.CreatureTemplate, effectiveMaxHP int) *game.CreatureInstance {
	seq := c.instanceSeq.Add(1)
	return &game.CreatureInstance{
		CreatureTemplate: *t,
		InstanceID:       t.ID + "#" + strconv.FormatUint(seq, 10),
		MaxHP:            effectiveMaxHP,
		CurrentHP:        effectiveMaxHP,
		TurnsSurvived:    0,
		IsFaceUp:         false,
	}
}
