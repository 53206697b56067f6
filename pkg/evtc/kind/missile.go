package kind

import (
	"github.com/evtclog/evtc-go/pkg/evtc/event"
	"github.com/evtclog/evtc-go/pkg/evtc/geom"
)

func scaledPositionAt(b *[event.Size]byte, off int) geom.Position {
	p := event.I16sAt(b, off, 3)
	return geom.FromScaledInt16(p[0], p[1], p[2], 10)
}

// MissileCreate is a projectile being created.
type MissileCreate struct {
	Time       uint64        `json:"time"`
	Source     AgentID       `json:"source"`
	Location   geom.Position `json:"location"`
	SkinID     uint32        `json:"skin_id"`
	SkillID    uint32        `json:"skill_id"`
	TrackingID uint32        `json:"tracking_id"`
}

func (MissileCreate) Type() Type { return TypeMissileCreate }
func (MissileCreate) isKind() {}

func (k *MissileCreate) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeMissileCreate)
}

func (k *MissileCreate) fill(ev *event.Event) {
	b := ev.Bytes()
	k.Time = ev.Time
	k.Source = SrcAgent(ev)
	k.Location = scaledPositionAt(&b, 24)
	k.SkinID = ev.OverstackValue
	k.SkillID = ev.SkillID
	k.TrackingID = ev.PadID()
}

// MissileLaunch is a projectile being launched towards a target.
type MissileLaunch struct {
	Time            uint64        `json:"time"`
	Source          AgentID       `json:"source"`
	Target          AgentID       `json:"target"`
	TargetLocation  geom.Position `json:"target_location"`
	CurrentLocation geom.Position `json:"current_location"`
	SkillID         uint32        `json:"skill_id"`
	Motion          uint8         `json:"motion"`
	Range           int16         `json:"range"`
	Flags           uint32        `json:"flags"`
	Speed           int16         `json:"speed"`
	TrackingID      uint32        `json:"tracking_id"`
}

func (MissileLaunch) Type() Type { return TypeMissileLaunch }
func (MissileLaunch) isKind() {}

func (k *MissileLaunch) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeMissileLaunch)
}

func (k *MissileLaunch) fill(ev *event.Event) {
	b := ev.Bytes()
	k.Time = ev.Time
	k.Source = SrcAgent(ev)
	k.Target = DstAgent(ev)
	k.TargetLocation = scaledPositionAt(&b, 24)
	k.CurrentLocation = scaledPositionAt(&b, 30)
	k.SkillID = ev.SkillID
	k.Motion = ev.Affinity
	k.Range = event.I16At(&b, 50)
	k.Flags = event.U32At(&b, 52)
	k.Speed = event.I16At(&b, 58)
	k.TrackingID = ev.PadID()
}

// MissileRemove is a projectile being removed.
type MissileRemove struct {
	Time         uint64  `json:"time"`
	Source       AgentID `json:"source"`
	FriendlyFire int32   `json:"friendly_fire"`
	SkillID      uint32  `json:"skill_id"`
	HitEnemy     bool    `json:"hit_enemy"`
	TrackingID   uint32  `json:"tracking_id"`
}

func (MissileRemove) Type() Type { return TypeMissileRemove }
func (MissileRemove) isKind() {}

func (k *MissileRemove) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeMissileRemove)
}

func (k *MissileRemove) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Source = SrcAgent(ev)
	k.FriendlyFire = ev.Value
	k.SkillID = ev.SkillID
	k.HitEnemy = ev.IsFlanking != 0
	k.TrackingID = ev.PadID()
}
