package message

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/lotus-sim/lotus-script-go/vehicle"
)

// TargetKind selects how the host resolves a Target.
type TargetKind uint8

const (
	KindMyself TargetKind = iota
	KindChildByIndex
	KindCockpitIndex
	KindBroadcast
	KindAcrossCoupling
	KindParent
)

var kindNames = [...]string{
	KindMyself:         "Myself",
	KindChildByIndex:   "ChildByIndex",
	KindCockpitIndex:   "CockpitIndex",
	KindBroadcast:      "Broadcast",
	KindAcrossCoupling: "AcrossCoupling",
	KindParent:         "Parent",
}

func (k TargetKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("TargetKind(%d)", k)
}

// Target is a routing instruction interpreted by the host. Delivery is not confirmed;
// an unresolvable target just never produces an inbound message.
type Target struct {
	Kind TargetKind
	// Index is the child or cockpit index.
	Index uint32
	// AcrossCouplings and IncludeSelf apply to Broadcast.
	AcrossCouplings bool
	IncludeSelf     bool
	// Coupling and Cascade apply to AcrossCoupling.
	Coupling vehicle.Coupling
	Cascade  bool
}

// Myself targets the sending script.
func Myself() Target { return Target{Kind: KindMyself} }

// Parent targets the script that owns the sender.
func Parent() Target { return Target{Kind: KindParent} }

// ChildByIndex targets the child script at index.
func ChildByIndex(index uint32) Target {
	return Target{Kind: KindChildByIndex, Index: index}
}

// CockpitIndex targets every script of the cockpit group at index.
func CockpitIndex(index uint32) Target {
	return Target{Kind: KindCockpitIndex, Index: index}
}

// Broadcast targets every script of the vehicle, optionally of coupled vehicles too.
func Broadcast(acrossCouplings, includeSelf bool) Target {
	return Target{Kind: KindBroadcast, AcrossCouplings: acrossCouplings, IncludeSelf: includeSelf}
}

// AcrossCoupling targets the vehicle attached at c. With cascade the host forwards the
// message further along the train in the same direction.
func AcrossCoupling(c vehicle.Coupling, cascade bool) Target {
	return Target{Kind: KindAcrossCoupling, Coupling: c, Cascade: cascade}
}

func (t Target) String() string {
	switch t.Kind {
	case KindChildByIndex, KindCockpitIndex:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Index)
	case KindBroadcast:
		return fmt.Sprintf("Broadcast(across_couplings=%t, include_self=%t)", t.AcrossCouplings, t.IncludeSelf)
	case KindAcrossCoupling:
		return fmt.Sprintf("AcrossCoupling(%s, cascade=%t)", t.Coupling, t.Cascade)
	default:
		return t.Kind.String()
	}
}

type broadcastBody struct {
	AcrossCouplings bool `msgpack:"across_couplings"`
	IncludeSelf     bool `msgpack:"include_self"`
}

type acrossCouplingBody struct {
	Coupling vehicle.Coupling `msgpack:"coupling"`
	Cascade  bool             `msgpack:"cascade"`
}

var (
	_ msgpack.CustomEncoder = Target{}
	_ msgpack.CustomDecoder = (*Target)(nil)
)

// EncodeMsgpack writes the externally tagged form: unit variants as a bare string, the
// others as a single-entry map from variant name to body.
func (t Target) EncodeMsgpack(enc *msgpack.Encoder) error {
	switch t.Kind {
	case KindMyself, KindParent:
		return enc.EncodeString(t.Kind.String())
	}

	if err := enc.EncodeMapLen(1); err != nil {
		return err
	}
	if err := enc.EncodeString(t.Kind.String()); err != nil {
		return err
	}

	switch t.Kind {
	case KindChildByIndex, KindCockpitIndex:
		return enc.EncodeUint(uint64(t.Index))
	case KindBroadcast:
		return enc.Encode(broadcastBody{AcrossCouplings: t.AcrossCouplings, IncludeSelf: t.IncludeSelf})
	case KindAcrossCoupling:
		return enc.Encode(acrossCouplingBody{Coupling: t.Coupling, Cascade: t.Cascade})
	}
	return fmt.Errorf("message: cannot encode %s", t.Kind)
}

func (t *Target) DecodeMsgpack(dec *msgpack.Decoder) error {
	code, err := dec.PeekCode()
	if err != nil {
		return err
	}

	if isStringCode(code) {
		name, err := dec.DecodeString()
		if err != nil {
			return err
		}
		switch name {
		case "Myself":
			*t = Myself()
		case "Parent":
			*t = Parent()
		default:
			return fmt.Errorf("message: unknown unit target %q", name)
		}
		return nil
	}

	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("message: target map with %d entries", n)
	}
	name, err := dec.DecodeString()
	if err != nil {
		return err
	}

	switch name {
	case "ChildByIndex", "CockpitIndex":
		index, err := dec.DecodeUint32()
		if err != nil {
			return err
		}
		if name == "ChildByIndex" {
			*t = ChildByIndex(index)
		} else {
			*t = CockpitIndex(index)
		}
	case "Broadcast":
		var body broadcastBody
		if err := dec.Decode(&body); err != nil {
			return err
		}
		*t = Broadcast(body.AcrossCouplings, body.IncludeSelf)
	case "AcrossCoupling":
		var body acrossCouplingBody
		if err := dec.Decode(&body); err != nil {
			return err
		}
		*t = AcrossCoupling(body.Coupling, body.Cascade)
	default:
		return fmt.Errorf("message: unknown target %q", name)
	}
	return nil
}

func isStringCode(c byte) bool {
	return msgpcode.IsFixedString(c) || c == msgpcode.Str8 || c == msgpcode.Str16 || c == msgpcode.Str32
}
