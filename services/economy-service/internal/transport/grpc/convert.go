package grpc_server

import (
	"time"

	"github.com/waste3d/honeyhive/services/economy-service/internal/domain"
	"github.com/waste3d/honeyhive/services/economy-service/pkg/economypb"
)

func toProfile(p *domain.Profile) *economypb.Profile {
	return &economypb.Profile{
		UserId:            p.ID.String(),
		Username:          p.Username,
		Hearts:            int32(p.Hearts),
		MaxHearts:         int32(p.MaxHearts),
		Xp:                int32(p.XP),
		Gems:              int32(p.Gems),
		LastHeartRefillAt: p.LastHeartRefillAt,
		IsPremium:         p.IsPremium,
	}
}

func toJar(j *domain.JarProgress) *economypb.JarProgress {
	if j == nil {
		return nil
	}
	return &economypb.JarProgress{
		UserId:        j.UserID.String(),
		FillPercent:   int32(j.FillPercent),
		PollenInCycle: int32(j.PollenInCycle),
		IsFull:        j.IsFull,
		Cycle:         int32(j.Cycle),
		UpdatedAt:     j.UpdatedAt,
	}
}

// toGift fills BadgeExpiresAt for flaming badges. Before the claim it is the
// expiry the badge would get if claimed at creation time.
func toGift(g *domain.MysteryGift) *economypb.MysteryGift {
	if g == nil {
		return nil
	}
	out := &economypb.MysteryGift{
		Id:         g.ID.String(),
		UserId:     g.UserID.String(),
		GiftType:   string(g.GiftType),
		GiftAmount: int32(g.GiftAmount),
		IsClaimed:  g.IsClaimed,
		CreatedAt:  g.CreatedAt,
		ClaimedAt:  g.ClaimedAt,
	}
	if g.GiftType == domain.GiftFlamingBadge {
		from := g.CreatedAt
		if g.ClaimedAt != nil {
			from = *g.ClaimedAt
		}
		exp := from.Add(domain.FlamingBadgeDuration)
		out.BadgeExpiresAt = &exp
	}
	return out
}

func toBadge(b *domain.FlamingBadge) *economypb.FlamingBadge {
	if b == nil {
		return nil
	}
	return &economypb.FlamingBadge{UserId: b.UserID.String(), GrantedAt: b.GrantedAt, ExpiresAt: b.ExpiresAt}
}

func toEvent(ev domain.Event) *economypb.Event {
	return &economypb.Event{
		Kind:   string(ev.Kind),
		UserId: ev.UserID,
		Jar:    toJar(ev.Jar),
		Gift:   toGift(ev.Gift),
		At:     ev.At,
	}
}

func toGrant(req *economypb.AwardRequest) domain.Grant {
	g := domain.Grant{Amount: int(req.Amount), Source: req.Source, Metadata: req.Metadata}
	if req.ChapterId != "" {
		g.ChapterID = &req.ChapterId
	}
	if req.CourseId != "" {
		g.CourseID = &req.CourseId
	}
	return g
}

func toBalanceUpdate(req *economypb.UpdateBalancesRequest) domain.BalanceUpdate {
	intPtr := func(v *int32) *int {
		if v == nil {
			return nil
		}
		i := int(*v)
		return &i
	}
	var refill *time.Time
	if req.LastHeartRefillAt != nil {
		t := *req.LastHeartRefillAt
		refill = &t
	}
	return domain.BalanceUpdate{
		Hearts:            intPtr(req.Hearts),
		XP:                intPtr(req.Xp),
		Gems:              intPtr(req.Gems),
		LastHeartRefillAt: refill,
	}
}
