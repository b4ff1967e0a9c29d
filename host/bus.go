package host

import (
	"go.uber.org/zap"

	"github.com/lotus-sim/lotus-script-go/message"
	"github.com/lotus-sim/lotus-script-go/vehicle"
)

type delivery struct {
	to     *Slot
	source message.Source
}

// route queues m for every recipient of every target. Targets that resolve to nobody are
// dropped silently, as the guest cannot observe delivery.
func (e *Engine) route(from *Slot, targets []message.Target, m *message.Message) {
	for _, t := range targets {
		ds := e.resolve(from, t)
		if len(ds) == 0 {
			from.log.Debug("message target resolved to no recipient",
				zap.Stringer("target", t), zap.Stringer("meta", m.Meta()))
		}
		for _, d := range ds {
			d.to.inbox = append(d.to.inbox, m.WithSource(d.source))
		}
	}
}

// resolve lists the recipients of one target as seen from a sending slot.
func (e *Engine) resolve(from *Slot, t message.Target) []delivery {
	switch t.Kind {
	case message.KindMyself:
		return []delivery{{to: from}}

	case message.KindParent:
		if from.parent == nil {
			return nil
		}
		return []delivery{{to: from.parent}}

	case message.KindChildByIndex:
		if int(t.Index) >= len(from.children) {
			return nil
		}
		return []delivery{{to: from.children[t.Index]}}

	case message.KindCockpitIndex:
		var out []delivery
		for _, s := range from.vehicle.slots {
			if s.cockpit >= 0 && uint32(s.cockpit) == t.Index {
				out = append(out, delivery{to: s})
			}
		}
		return out

	case message.KindBroadcast:
		var out []delivery
		for _, s := range from.vehicle.slots {
			if s != from || t.IncludeSelf {
				out = append(out, delivery{to: s})
			}
		}
		if t.AcrossCouplings {
			out = append(out, e.walk(from.vehicle, vehicle.Front, true)...)
			out = append(out, e.walk(from.vehicle, vehicle.Rear, true)...)
		}
		return out

	case message.KindAcrossCoupling:
		return e.walk(from.vehicle, t.Coupling, t.Cascade)
	}
	return nil
}

// walk delivers to the vehicle coupled at c and, with cascade, to every vehicle further
// along in that direction. Receivers see the coupling they were reached through.
func (e *Engine) walk(start *Vehicle, c vehicle.Coupling, cascade bool) []delivery {
	entry := opposite(c)
	var out []delivery
	for v := start.neighbor(c); v != nil; v = v.neighbor(c) {
		src := message.FromCoupling(entry)
		for _, s := range v.slots {
			out = append(out, delivery{to: s, source: src})
		}
		if !cascade {
			break
		}
	}
	return out
}

func opposite(c vehicle.Coupling) vehicle.Coupling {
	if c == vehicle.Front {
		return vehicle.Rear
	}
	return vehicle.Front
}
