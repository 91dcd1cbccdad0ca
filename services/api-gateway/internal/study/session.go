// Package study runs a quiz against the economy from a terminal: right
// answers earn XP, gems and pollen, wrong ones cost a heart.
package study

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/waste3d/honeyhive/services/api-gateway/internal/client"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/i18n"
	"github.com/waste3d/honeyhive/services/api-gateway/internal/prefs"
	"github.com/waste3d/honeyhive/services/economy-service/pkg/economypb"
)

const (
	DefaultXPPerCorrect     = 10
	DefaultGemsPerCorrect   = 2
	DefaultPollenPerCorrect = 15
)

var ErrNoHearts = errors.New("no hearts left")

type Rewards struct {
	XP     int
	Gems   int
	Pollen int
}

type Config struct {
	UserID    string
	Username  string
	CourseID  string
	Questions []Question
	Rewards   Rewards
	Prefs     prefs.Prefs
}

var mascotFaces = map[string]string{
	prefs.MascotIdle:    "(o.o)",
	prefs.MascotBuzzing: "(^o^)",
	prefs.MascotSleepy:  "(-.-)",
}

type Session struct {
	cfg     Config
	tr      *i18n.Translator
	hearts  *client.HeartTracker
	rewards *client.Rewards
	jars    *client.JarTracker

	mu   sync.Mutex
	out  io.Writer
	next int
}

func NewSession(api economypb.EconomyServiceClient, cfg Config, tr *i18n.Translator, out io.Writer, opts ...client.Option) *Session {
	if cfg.Rewards == (Rewards{}) {
		cfg.Rewards = Rewards{XP: DefaultXPPerCorrect, Gems: DefaultGemsPerCorrect, Pollen: DefaultPollenPerCorrect}
	}
	return &Session{
		cfg:     cfg,
		tr:      tr,
		hearts:  client.NewHeartTracker(api, cfg.UserID, opts...),
		rewards: client.NewRewards(api, opts...),
		jars:    client.NewJarTracker(api, opts...),
		out:     out,
	}
}

func (s *Session) Hearts() *client.HeartTracker {
	return s.hearts
}

func (s *Session) say(key string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, s.tr.T(s.cfg.Prefs.Language, key, args...))
}

func (s *Session) sayErr(err error) {
	s.say("errors." + client.ErrorKey(err))
}

// Start syncs hearts and the jar and subscribes to gift and jar pushes. The
// returned func releases the subscriptions.
func (s *Session) Start(ctx context.Context) (func(), error) {
	s.mu.Lock()
	fmt.Fprintln(s.out, mascotFaces[s.cfg.Prefs.Mascot])
	s.mu.Unlock()
	s.say("study.welcome", s.cfg.Username)

	if _, err := s.hearts.CheckAndRefillHearts(ctx); err != nil {
		s.sayErr(err)
	}
	s.jars.GetUnclaimedGift(ctx, s.cfg.UserID)
	s.jars.Observe(ctx, s.cfg.UserID, s.jars.GetJarProgress(ctx, s.cfg.UserID))

	stopJar, err := s.jars.SubscribeToJarProgress(ctx, s.cfg.UserID, func(client.JarProgress) {})
	if err != nil {
		return nil, err
	}
	stopGifts, err := s.jars.SubscribeToGifts(ctx, s.cfg.UserID, func(ev client.GiftEvent) {
		if ev.Kind == economypb.KindGiftCreated {
			s.say("study.gift_ready")
		}
	})
	if err != nil {
		stopJar()
		return nil, err
	}

	last := s.hearts.State().Hearts
	stopHearts := s.hearts.OnChange(func(st client.HeartState) {
		s.mu.Lock()
		changed := st.Hearts != last
		last = st.Hearts
		s.mu.Unlock()
		if changed {
			s.say("study.hearts", st.Hearts, st.MaxHearts)
		}
	})

	return func() {
		stopHearts()
		stopGifts()
		stopJar()
	}, nil
}

// Ask prints the next question and returns it. Questions cycle.
func (s *Session) Ask() Question {
	s.mu.Lock()
	q := s.cfg.Questions[s.next%len(s.cfg.Questions)]
	n := s.next + 1
	s.mu.Unlock()

	s.say("study.question", n, q.Prompt)
	s.mu.Lock()
	for i, opt := range q.Options {
		fmt.Fprintf(s.out, "  %d) %s\n", i+1, opt)
	}
	s.mu.Unlock()
	return q
}

// Answer scores choice against the current question. Without hearts nothing
// is scored and ErrNoHearts is returned.
func (s *Session) Answer(ctx context.Context, choice int) (bool, error) {
	if !s.hearts.CanAnswer() {
		s.say("study.no_hearts")
		return false, ErrNoHearts
	}

	s.mu.Lock()
	q := s.cfg.Questions[s.next%len(s.cfg.Questions)]
	s.next++
	n := s.next
	s.mu.Unlock()

	if !q.correct(choice) {
		s.say("study.wrong", q.Options[q.Answer-1])
		if _, err := s.hearts.DeductHeart(ctx, 1); err != nil {
			s.sayErr(err)
			return false, err
		}
		return false, nil
	}

	award := func(amount int, source string) client.Award {
		return client.Award{
			Amount:    amount,
			Source:    source,
			ChapterID: q.Chapter,
			CourseID:  s.cfg.CourseID,
			Metadata:  map[string]any{"question": n},
		}
	}
	r := s.cfg.Rewards
	if _, err := s.rewards.AwardXP(ctx, s.cfg.UserID, award(r.XP, "quiz_correct")); err != nil {
		s.sayErr(err)
		return true, err
	}
	if _, err := s.rewards.AwardGems(ctx, s.cfg.UserID, award(r.Gems, "quiz_correct")); err != nil {
		s.sayErr(err)
		return true, err
	}
	s.say("study.correct", r.XP, r.Gems)

	res, err := s.jars.AddPollen(ctx, s.cfg.UserID, r.Pollen)
	if err != nil {
		s.sayErr(err)
		return true, err
	}
	s.say("study.jar", res.FillPercent)
	if res.BecameFull && s.jars.Pending(s.cfg.UserID) != nil {
		s.say("study.gift_ready")
	}
	return true, nil
}

// Claim opens the pending gift, if any.
func (s *Session) Claim(ctx context.Context) error {
	gift := s.jars.Pending(s.cfg.UserID)
	if gift == nil {
		gift = s.jars.GetUnclaimedGift(ctx, s.cfg.UserID)
	}
	if gift == nil {
		s.say("errors.gift_not_found")
		return nil
	}

	res, err := s.jars.ClaimMysteryGift(ctx, s.cfg.UserID, gift.ID)
	if err != nil {
		s.sayErr(err)
		return err
	}
	switch res.GiftType {
	case "pollen":
		s.say("study.gift_pollen", res.GiftAmount)
	case "honey_drops":
		s.say("study.gift_honey_drops", res.GiftAmount)
		s.hearts.CheckAndRefillHearts(ctx)
	case "flaming_badge":
		if res.BadgeExpiresAt != nil {
			s.say("study.gift_flaming_badge", res.BadgeExpiresAt.Local().Format(time.Kitchen))
		}
	}
	return nil
}

// Buy trades gems for hearts at the economy's rate.
func (s *Session) Buy(ctx context.Context, hearts int) error {
	res, err := s.hearts.ConvertGemsToHearts(ctx, hearts, 0)
	if err != nil {
		s.sayErr(err)
		return err
	}
	s.say("study.converted", res.NewGems, res.NewHearts)
	return nil
}

// Status prints hearts, the refill countdown, the jar and an active badge.
func (s *Session) Status(ctx context.Context) {
	st := s.hearts.State()
	s.say("study.hearts", st.Hearts, st.MaxHearts)
	if d := st.RefillTimeDisplay(); d != "" {
		s.say("study.refill_in", d)
	}
	s.say("study.jar", s.jars.GetJarProgress(ctx, s.cfg.UserID).FillPercent)
	if b := s.jars.GetActiveFlamingBadge(ctx, s.cfg.UserID); b != nil {
		s.say("study.badge_active", b.ExpiresAt.Local().Format(time.Kitchen))
	}
}

// Run reads commands from in until "quit", EOF or ctx ends.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	s.say("study.help")
	s.Ask()

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if ctx.Err() != nil {
			break
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch cmd := strings.ToLower(fields[0]); cmd {
		case "quit", "exit":
			s.say("study.bye")
			return nil
		case "help":
			s.say("study.help")
		case "status":
			s.Status(ctx)
		case "claim":
			s.Claim(ctx)
		case "buy":
			n := 1
			if len(fields) > 1 {
				v, err := strconv.Atoi(fields[1])
				if err != nil || v < 1 {
					s.say("errors.invalid_amount")
					continue
				}
				n = v
			}
			s.Buy(ctx, n)
		default:
			choice, err := strconv.Atoi(cmd)
			if err != nil {
				s.say("study.help")
				continue
			}
			if _, err := s.Answer(ctx, choice); errors.Is(err, ErrNoHearts) {
				continue
			}
			s.Ask()
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return ctx.Err()
}
