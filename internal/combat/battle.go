package combat

import (
	"fmt"
	"io"
	"log/slog"

	"duelsim/internal/util"
)

// Item effects.
const (
	reikiLargeAmount = 6
	reikiSmallAmount = 3
	loveLargeHeal    = 16
	loveSmallHeal    = 8
	loveSmallBalance = 64
)

// idleMove stands in for a side with no usable command.
var idleMove = Move{Type: MoveUnknown}

// Battle owns one match and advances it a turn at a time. It is not safe
// for concurrent use.
type Battle struct {
	catalog *Catalog
	rng     Rand
	log     *slog.Logger
	emit    func(Event)
	state   BattleState
}

type Option func(*Battle)

// WithRand injects the random source. The default is util.New(1).
func WithRand(r Rand) Option {
	return func(b *Battle) { b.rng = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Battle) { b.log = l }
}

// WithEmitter receives every event of a committed turn.
func WithEmitter(emit func(Event)) Option {
	return func(b *Battle) { b.emit = emit }
}

func WithStage(s Stage) Option {
	return func(b *Battle) { b.state.Stage = s }
}

// WithItems stocks one item per side at battle start.
func WithItems(p1, p2 Item) Option {
	return func(b *Battle) {
		b.state.P1.Item = p1
		b.state.P2.Item = p2
	}
}

// NewBattle starts a match between two catalogued characters.
func NewBattle(cat *Catalog, p1, p2 CharacterID, opts ...Option) (*Battle, error) {
	if cat.Len() == 0 {
		return nil, newError(CodePrecondition, "character data not loaded")
	}
	for _, id := range []CharacterID{p1, p2} {
		if !cat.Has(id) {
			return nil, newError(CodeLookup, "character %s not in catalog", id)
		}
	}
	b := &Battle{
		catalog: cat,
		state: BattleState{
			P1:    newPlayerState(p1),
			P2:    newPlayerState(p2),
			Phase: PhaseInput,
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = util.New(1)
	}
	if b.log == nil {
		b.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if b.emit == nil {
		b.emit = func(Event) {}
	}
	return b, nil
}

// State returns a copy of the current snapshot.
func (b *Battle) State() BattleState { return b.state.clone() }

func (b *Battle) Phase() Phase      { return b.state.Phase }
func (b *Battle) MatchOver() bool   { return b.state.MatchOver }
func (b *Battle) Winner() Side      { return b.state.Winner }
func (b *Battle) Catalog() *Catalog { return b.catalog }

// turn is the working set of one ProcessTurn call.
type turn struct {
	st     BattleState
	out    Outcome
	in     [3]TurnInput
	move   [3]Move
	acts   [3]bool
	actor  [3]Actor
	stats  [3]CharacterStats
	dmg    [3]DamageResult
	preHP  [3]int
	events []Event
}

func (t *turn) player(s Side) *PlayerState { return t.st.Player(s) }

func (t *turn) event(typ string, payload map[string]any) {
	t.events = append(t.events, Event{Turn: t.st.Turn, Type: typ, Payload: payload})
}

// ProcessTurn resolves one full turn. On error the battle state is left
// untouched and no events are emitted.
func (b *Battle) ProcessTurn(p1, p2 TurnInput) (TurnResult, error) {
	if b.state.MatchOver {
		return TurnResult{State: b.State()}, ErrMatchOver
	}
	for side, in := range []TurnInput{p1, p2} {
		if err := in.validate(); err != nil {
			return TurnResult{}, wrapError(CodeValidation, err, "%s input", Side(side+1))
		}
	}
	if err := b.state.P1.validate(); err != nil {
		return TurnResult{}, err
	}
	if err := b.state.P2.validate(); err != nil {
		return TurnResult{}, err
	}

	t := &turn{st: b.state.clone()}
	t.in[Player1], t.in[Player2] = p1, p2
	t.out.Turn = t.st.Turn
	t.st.Reward = nil

	if err := b.input(t); err != nil {
		return TurnResult{}, err
	}
	b.preparation(t)
	if err := b.activation(t); err != nil {
		return TurnResult{}, err
	}
	b.resolution(t)
	b.reward(t)

	t.st.Turn++
	if t.st.MatchOver {
		t.st.Phase = PhaseMatchOver
	} else {
		t.st.Phase = PhaseInput
	}

	b.state = t.st
	for _, ev := range t.events {
		b.emit(ev)
	}
	msg := turnMessage(t)
	b.log.Debug("turn resolved",
		"turn", t.out.Turn,
		"first", t.out.First,
		"scenario", t.out.Scenario,
		"p1_judgment", t.out.P1.Judgment,
		"p2_judgment", t.out.P2.Judgment,
		"p1_hp", t.st.P1.HP,
		"p2_hp", t.st.P2.HP,
	)
	if t.st.MatchOver {
		b.log.Debug("match over", "turn", t.out.Turn, "winner", t.st.Winner, "double_ko", t.out.DoubleKO)
	}
	return TurnResult{State: b.State(), Outcome: t.out, Message: msg}, nil
}

// input handles recovery, items, charging and initiative. A side that starts
// the turn knocked down does not act, even if it recovers.
func (b *Battle) input(t *turn) error {
	t.st.Phase = PhaseInput

	var down [3]bool
	for _, s := range []Side{Player1, Player2} {
		ps := t.player(s)
		st, err := b.catalog.Stats(ps.Character)
		if err != nil {
			return err
		}
		t.stats[s] = st
		t.move[s] = idleMove
		down[s] = ps.KnockedDown
		ps.Command = nil
		if down[s] || t.in[s].Command == nil {
			continue
		}
		mv, err := b.catalog.Move(ps.Character, t.in[s].Command.String())
		if err != nil {
			return err
		}
		t.move[s] = mv
		t.acts[s] = true
	}

	for _, s := range []Side{Player1, Player2} {
		if !down[s] {
			continue
		}
		ps := t.player(s)
		forced := t.acts[s.Other()] && ForcesRecovery(t.move[s.Other()].Type)
		ps.KnockdownRecovery = RecoveryFramesRemaining(ps.KnockdownRecovery, t.in[s].RecoveryPresses)
		if forced || ps.KnockdownRecovery == 0 {
			ps.KnockedDown = false
			ps.KnockdownRecovery = 0
			ps.Balance = 0
			t.out.Side(s).Recovered = true
			t.event("Recovered", map[string]any{"side": s, "forced": forced})
		}
	}

	for _, s := range []Side{Player1, Player2} {
		if down[s] {
			continue
		}
		ps := t.player(s)
		in := t.in[s]
		if in.UseItem && !in.Charge.Charging && ps.Item != ItemNone {
			used := ps.Item
			applyItem(ps, used)
			t.out.Side(s).ItemUsed = used
			t.event("ItemUsed", map[string]any{"side": s, "item": used})
		}
		if in.Charge.Charging {
			cat := ChargeCategoryFor(in.Charge.Direction)
			ps.Touki = ChargeTouki(ps.Touki, in.Charge.FramesHeld, cat, ps.ToukiBuff)
		}
		if t.acts[s] {
			c := *in.Command
			ps.Command = &c
		}
	}

	t.st.First = DetermineInitiative(t.st.P1.Command, t.st.P2.Command)
	t.out.First = t.st.First
	t.out.CompleteSecond = isCompleteSecond(t, t.st.First)
	return nil
}

// isCompleteSecond: the second side either never committed an action or
// committed it after the first side's preparation had already elapsed.
func isCompleteSecond(t *turn, first Side) bool {
	second := first.Other()
	if !t.acts[first] {
		return false
	}
	if !t.acts[second] {
		return true
	}
	prep := t.move[first].Frames.Preparation
	if prep <= 0 {
		return false
	}
	gap := t.player(second).Command.Timestamp - t.player(first).Command.Timestamp
	return gap >= prep
}

// preparation reports stage-dependent timing. It does not affect outcomes.
func (b *Battle) preparation(t *turn) {
	t.st.Phase = PhasePreparation
	first := t.st.First
	if !t.acts[first] {
		return
	}
	mv := t.move[first]
	t.event("Preparation", map[string]any{
		"side":       first,
		"stage":      t.st.Stage,
		"transition": mv.Frames.PrepTransition[t.st.Stage],
		"frames":     mv.Frames.Preparation,
	})
}

// activation draws corrections and judges both actions.
func (b *Battle) activation(t *turn) error {
	t.st.Phase = PhaseActivation
	first := t.st.First
	second := first.Other()

	scenario := ClassifyScenario(t.move[first].Type, t.move[second].Type)
	t.out.Scenario = scenario.String()

	for _, s := range []Side{Player1, Player2} {
		ps := t.player(s)
		if cost := t.move[s].ReikiCost; t.acts[s] && cost > ps.Reiki {
			return newError(CodeValidation, "%s: %s costs %d reiki, has %d", s, t.move[s].Command, cost, ps.Reiki)
		}
	}

	var random [3]float64
	random[first] = Draw(b.rng, FirstRange())
	random[second] = Draw(b.rng, SecondRange(scenario))

	var mods [3]Modifiers
	for _, s := range []Side{Player1, Player2} {
		mods[s] = RollModifiers(b.rng, t.stats[s], t.player(s).HP)
	}

	for _, s := range []Side{Player1, Player2} {
		ps := t.player(s)
		corr, err := NewCorrections(ps.Touki, ps.Balance, ps.HP, random[s])
		if err != nil {
			return err
		}
		role := RoleFirst
		if s == second {
			role = RoleSecond
			if t.out.CompleteSecond {
				role = RoleCompleteSecond
			}
		}
		t.actor[s] = Actor{Move: t.move[s].Stats, Corrections: corr, Role: role, Modifiers: mods[s]}
	}

	for _, s := range []Side{Player1, Player2} {
		so := t.out.Side(s)
		mv := t.move[s]
		so.Command = mv.Command
		so.Move = mv.ID
		so.MoveType = mv.Type.String()
		so.Role = t.actor[s].Role
		so.Corrections = t.actor[s].Corrections
		so.Modifiers = t.actor[s].Modifiers
		so.Stats = Corrected(t.actor[s])
		so.Judgment = DirectFail
		if t.acts[s] {
			so.Judgment = Judge(JudgmentInput{Attacker: t.actor[s], Defender: t.actor[s.Other()].asDefender()})
			t.player(s).Reiki -= mv.ReikiCost
		}
		t.event("Judgment", map[string]any{
			"side": s, "command": mv.Command, "role": so.Role, "judgment": so.Judgment,
		})
	}
	return nil
}

// resolution applies both actions simultaneously against pre-turn health.
func (b *Battle) resolution(t *turn) {
	t.st.Phase = PhaseResolution
	for _, s := range []Side{Player1, Player2} {
		t.preHP[s] = t.player(s).HP
	}

	for _, s := range []Side{Player1, Player2} {
		target := s.Other()
		def := t.player(target)
		t.dmg[s] = Resolve(DamageInput{
			BasePower:       t.move[s].Stats.Power,
			BaseDrain:       t.move[s].Stats.BalanceDrain,
			Corrections:     t.actor[s].Corrections,
			Modifiers:       t.actor[s].Modifiers,
			Judgment:        t.out.Side(s).Judgment,
			Defender:        t.stats[target],
			DefenderGuards:  t.acts[target] && t.move[target].Type == MoveGuard,
			DefenderHP:      def.HP,
			DefenderBalance: def.Balance,
			Carry:           def.HPCarry,
		})
		t.out.Side(s).Dealt = t.dmg[s]
	}

	t.st.LastDamage = 0
	t.st.LastBalanceDamage = 0
	for _, s := range []Side{Player1, Player2} {
		d := t.dmg[s]
		target := s.Other()
		def := t.player(target)
		def.HP = max(0, def.HP-d.HPDamage)
		def.HPCarry = d.Carry
		def.Balance = AddBalanceDamage(def.Balance, d.BalanceDamage)
		if IsKnockdown(def.Balance) {
			def.Balance = 0
			def.KnockedDown = true
			def.KnockdownRecovery = t.stats[target].KnockdownFrames
			def.Command = nil
			t.out.Side(target).KnockedDown = true
			t.event("Knockdown", map[string]any{"side": target, "recovery": def.KnockdownRecovery})
		}
		t.st.LastDamage += d.HPDamage
		t.st.LastBalanceDamage += d.BalanceDamage
		if d.Hit != HitNone {
			t.event("Hit", map[string]any{
				"side": s, "target": target, "hit": d.Hit,
				"dmg": d.HPDamage, "balance": d.BalanceDamage, "hp": def.HP,
			})
		}
	}

	t.st.P1.Touki = 0
	t.st.P2.Touki = 0

	dead := [3]bool{
		Player1: t.st.P1.HP <= 0 || t.dmg[Player2].Defeated,
		Player2: t.st.P2.HP <= 0 || t.dmg[Player1].Defeated,
	}
	t.out.P1.Defeated = dead[Player1]
	t.out.P2.Defeated = dead[Player2]
	switch {
	case dead[Player1] && dead[Player2]:
		t.out.DoubleKO = true
		t.st.Winner = DoubleKOWinner(t.dmg[Player2].HPDamage, t.preHP[Player1], t.dmg[Player1].HPDamage, t.preHP[Player2])
	case dead[Player1]:
		t.st.Winner = Player2
	case dead[Player2]:
		t.st.Winner = Player1
	}
	if t.st.Winner != SideNone {
		t.st.MatchOver = true
		t.out.Winner = t.st.Winner
		t.out.MatchOver = true
		t.event("MatchOver", map[string]any{"winner": t.st.Winner, "double_ko": t.out.DoubleKO})
	}
}

// reward hands the crystal ball to a direct hit, player 1 first.
func (b *Battle) reward(t *turn) {
	t.st.Phase = PhaseReward
	for _, s := range []Side{Player1, Player2} {
		if t.out.Side(s).Judgment != DirectHit {
			continue
		}
		ps := t.player(s)
		before := ps.Reiki
		ps.Reiki = min(MaxReiki, ps.Reiki+RewardReiki)
		t.st.Reward = &Reward{Side: s, Reiki: RewardReiki}
		t.out.Side(s).Rewarded = true
		t.event("Reward", map[string]any{"side": s, "reiki": RewardReiki, "gained": ps.Reiki - before})
		return
	}
}

func applyItem(ps *PlayerState, it Item) {
	switch it {
	case ItemReikiLarge:
		ps.Reiki = min(MaxReiki, ps.Reiki+reikiLargeAmount)
	case ItemReikiSmall:
		ps.Reiki = min(MaxReiki, ps.Reiki+reikiSmallAmount)
	case ItemSpiritLarge:
		ps.ToukiBuff = ToukiUp
	case ItemSpiritSmall:
		if ps.ToukiBuff == ToukiDown {
			ps.ToukiBuff = ToukiNormal
		}
	case ItemLoveLarge:
		ps.HP = min(MaxHP, ps.HP+loveLargeHeal)
		ps.Balance = 0
	case ItemLoveSmall:
		ps.HP = min(MaxHP, ps.HP+loveSmallHeal)
		ps.Balance = max(0, ps.Balance-loveSmallBalance)
	}
	ps.Item = ItemNone
}

func turnMessage(t *turn) string {
	cmd := func(s Side) string {
		if c := t.out.Side(s).Command; c != "" {
			return c
		}
		return "none"
	}
	return fmt.Sprintf("Turn %d: %s first | P1: %s (%s) | P2: %s (%s)",
		t.out.Turn, t.out.First, cmd(Player1), t.out.P1.Judgment, cmd(Player2), t.out.P2.Judgment)
}
