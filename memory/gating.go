// Package memory augments environments with gated scratch memory and defines
// the boundary to external knowledge sources.
package memory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rlmem/gating-rl/types"
)

// SlotPrefix prefixes the observation attributes holding memory contents.
// Attributes carrying the prefix are never offered as gate targets, which
// also keeps nested wrappers from copying each other's slots.
const SlotPrefix = "memory_"

// GateActionName is the name shared by all gate actions.
const GateActionName = "gate"

// GatingMemory wraps any environment with a fixed number of scratch memory
// slots. The wrapped observation carries one memory_<i> attribute per slot,
// and the action set grows by one gate action per (slot, base attribute)
// pair. A gate action copies the attribute's current value into the slot at a
// fixed reward without advancing the base environment; base actions pass
// through untouched. Slot contents survive base transitions until the slot is
// gated again, and reset to null at every episode start.
//
// Only the public Environment contract of the base is used, so wrappers
// compose: a GatingMemory can wrap another GatingMemory.
type GatingMemory struct {
	base       types.Environment
	slots      []types.Value
	gateReward float64
}

var _ types.Environment = &GatingMemory{}

func NewGatingMemory(base types.Environment, numSlots int, gateReward float64) (*GatingMemory, error) {
	if base == nil {
		return nil, fmt.Errorf("nil base environment: %w", types.ErrInvalidArgument)
	}
	if numSlots < 0 {
		return nil, fmt.Errorf("%d memory slots: %w", numSlots, types.ErrInvalidArgument)
	}
	return &GatingMemory{
		base:       base,
		slots:      make([]types.Value, numSlots),
		gateReward: gateReward,
	}, nil
}

// GateAction is the action gating the named base attribute into the slot.
func GateAction(slot int, attribute string) types.Action {
	return types.NewAction(GateActionName,
		types.P("slot", types.Int(slot)),
		types.P("attribute", types.String(attribute)),
	)
}

// SlotAttribute names the observation attribute of a slot.
func SlotAttribute(slot int) string {
	return SlotPrefix + strconv.Itoa(slot)
}

func (g *GatingMemory) StartNewEpisode() {
	for i := range g.slots {
		g.slots[i] = types.Null
	}
	g.base.StartNewEpisode()
}

func (g *GatingMemory) Observation() *types.State {
	base := g.base.Observation()
	if base.Terminal() {
		return types.Terminal
	}
	attrs := make(map[string]types.Value, base.Len()+len(g.slots))
	for _, name := range base.Attributes() {
		v, _ := base.Get(name)
		attrs[name] = v
	}
	for i, v := range g.slots {
		attrs[SlotAttribute(i)] = v
	}
	return types.NewState(attrs)
}

func (g *GatingMemory) Actions() []types.Action {
	baseActions := g.base.Actions()
	if len(baseActions) == 0 {
		// Terminality is inherited unchanged.
		return nil
	}
	actions := make([]types.Action, 0, len(baseActions))
	seen := make(map[string]bool, len(baseActions))
	for _, a := range baseActions {
		actions = append(actions, a)
		seen[a.Hash()] = true
	}
	// Union: a nested wrapper already offers gates over the shared base
	// attributes, so skip duplicates.
	baseAttrs := g.base.Observation().Attributes()
	for i := range g.slots {
		for _, attr := range baseAttrs {
			if strings.HasPrefix(attr, SlotPrefix) {
				continue
			}
			gate := GateAction(i, attr)
			if seen[gate.Hash()] {
				continue
			}
			actions = append(actions, gate)
			seen[gate.Hash()] = true
		}
	}
	return actions
}

func (g *GatingMemory) React(action types.Action) (float64, error) {
	if g.base.Done() {
		return 0, types.ErrInvalidState
	}
	if action.Name() != GateActionName {
		return g.base.React(action)
	}

	slotValue, ok := action.Param("slot")
	if !ok {
		return 0, fmt.Errorf("gate action without slot: %w", types.ErrInvalidArgument)
	}
	attrValue, ok := action.Param("attribute")
	if !ok {
		return 0, fmt.Errorf("gate action without attribute: %w", types.ErrInvalidArgument)
	}
	slotNum, ok := slotValue.Number()
	slot := int(slotNum)
	if !ok || slot < 0 || slot >= len(g.slots) {
		// A gate over a slot this wrapper does not own can still belong to a
		// wrapped GatingMemory with more slots underneath. Its gates appear
		// in the combined action set, so forward what the base advertises.
		if g.baseAdvertises(action) {
			return g.base.React(action)
		}
		return 0, fmt.Errorf("gate slot %s out of range [0, %d): %w",
			slotValue, len(g.slots), types.ErrInvalidArgument)
	}
	attr, ok := attrValue.Text()
	if !ok {
		return 0, fmt.Errorf("gate attribute %s is not a name: %w", attrValue, types.ErrInvalidArgument)
	}
	v, ok := g.base.Observation().Get(attr)
	if !ok {
		return 0, fmt.Errorf("gate attribute %q not in the base observation: %w", attr, types.ErrInvalidArgument)
	}
	g.slots[slot] = v
	return g.gateReward, nil
}

func (g *GatingMemory) baseAdvertises(action types.Action) bool {
	for _, a := range g.base.Actions() {
		if a.Eq(action) {
			return true
		}
	}
	return false
}

func (g *GatingMemory) Done() bool {
	return g.base.Done()
}
