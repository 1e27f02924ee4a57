package physics

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shardmaze/vmath"
)

const tolerance = 1e-9

// near compares componentwise with an absolute tolerance
func near(a, b mgl64.Vec3, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

// wallAt builds a single wall box x in [9,11], y in [0,4], z in [-4,4]
func wallAt() []vmath.AABB {
	return []vmath.AABB{vmath.BoxAround(mgl64.Vec3{10, 2, 0}, mgl64.Vec3{1, 2, 4})}
}

func openOracle() *Oracle {
	return NewOracle(DefaultOracleConfig(), nil)
}

func TestOracleArenaRadius(t *testing.T) {
	o := openOracle()
	if o.Collides(mgl64.Vec3{100, 1.6, 0}) {
		t.Error("Expected position exactly on arena radius to be accepted")
	}
	if !o.Collides(mgl64.Vec3{100.5, 1.6, 0}) {
		t.Error("Expected position beyond arena radius to collide")
	}
	if !o.Collides(mgl64.Vec3{80, 1.6, 80}) {
		t.Error("Expected diagonal position beyond arena radius to collide")
	}
	// Height does not count toward the radius
	if o.Collides(mgl64.Vec3{0, 500, 0}) {
		t.Error("Expected vertical offset to be ignored by the radius check")
	}
}

func TestOracleSurfaceInclusive(t *testing.T) {
	o := NewOracle(DefaultOracleConfig(), wallAt())

	tests := []struct {
		name string
		pos  mgl64.Vec3
		want bool
	}{
		{"touching west face", mgl64.Vec3{8.5, 1.6, 0}, true},
		{"just clear of west face", mgl64.Vec3{8.25, 1.6, 0}, false},
		{"touching east face", mgl64.Vec3{11.5, 1.6, 0}, true},
		{"just clear of east face", mgl64.Vec3{11.75, 1.6, 0}, false},
		{"touching north end", mgl64.Vec3{10, 1.6, -4.5}, true},
		{"just clear of north end", mgl64.Vec3{10, 1.6, -4.75}, false},
		{"touching top", mgl64.Vec3{10, 5.6, 0}, true},
		{"above top", mgl64.Vec3{10, 5.75, 0}, false},
		{"inside", mgl64.Vec3{10, 1, 0}, true},
	}
	for _, tt := range tests {
		if got := o.Collides(tt.pos); got != tt.want {
			t.Errorf("%s: expected collides=%v at %v, got %v", tt.name, tt.want, tt.pos, got)
		}
	}
}

func TestOracleCopiesBoxes(t *testing.T) {
	boxes := wallAt()
	o := NewOracle(DefaultOracleConfig(), boxes)
	boxes[0] = vmath.BoxAround(mgl64.Vec3{-50, 2, 0}, mgl64.Vec3{1, 1, 1})
	if !o.Collides(mgl64.Vec3{10, 1.6, 0}) {
		t.Error("Expected oracle to keep its own copy of the walls")
	}
	if o.WallCount() != 1 {
		t.Errorf("Expected 1 wall, got %d", o.WallCount())
	}
}

func TestNavigatorRejectsBlockedMove(t *testing.T) {
	n := NewNavigator(NewOracle(DefaultOracleConfig(), wallAt()), 0.2)
	start := mgl64.Vec3{8.4, 1.6, 0.3}
	got, ok := n.TryMove(start, mgl64.Vec3{0.2, 0, 0.1})
	if ok {
		t.Fatal("Expected move into wall to be rejected")
	}
	if got != start {
		t.Errorf("Expected position %v unchanged, got %v", start, got)
	}

	got, ok = n.TryMove(start, mgl64.Vec3{-0.2, 0, 0})
	if !ok || got != start.Add(mgl64.Vec3{-0.2, 0, 0}) {
		t.Errorf("Expected free move to be accepted, got %v ok=%v", got, ok)
	}
}

func TestNavigatorDiagonalNotFaster(t *testing.T) {
	n := NewNavigator(openOracle(), 0.2)
	axial := n.MoveDelta(IntentFrom(true, false, false, false), 0.7)
	diagonal := n.MoveDelta(IntentFrom(true, false, true, false), 0.7)
	if math.Abs(axial.Len()-0.2) > tolerance {
		t.Errorf("Expected axial step 0.2, got %v", axial.Len())
	}
	if math.Abs(diagonal.Len()-0.2) > tolerance {
		t.Errorf("Expected diagonal step 0.2, got %v", diagonal.Len())
	}
}

func TestNavigatorYawOrientation(t *testing.T) {
	n := NewNavigator(openOracle(), 1)

	tests := []struct {
		name   string
		intent MoveIntent
		yaw    float64
		want   mgl64.Vec3
	}{
		{"forward at yaw 0", MoveIntent{Forward: 1}, 0, mgl64.Vec3{0, 0, -1}},
		{"right at yaw 0", MoveIntent{Right: 1}, 0, mgl64.Vec3{1, 0, 0}},
		{"back at yaw 0", MoveIntent{Forward: -1}, 0, mgl64.Vec3{0, 0, 1}},
		{"forward at quarter turn", MoveIntent{Forward: 1}, math.Pi / 2, mgl64.Vec3{-1, 0, 0}},
	}
	for _, tt := range tests {
		if got := n.MoveDelta(tt.intent, tt.yaw); !near(got, tt.want, tolerance) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}

	if in := IntentFrom(true, true, true, true); !in.Idle() {
		t.Errorf("Expected opposing keys to cancel, got %+v", in)
	}
	start := mgl64.Vec3{1, 1.6, 1}
	if got, moved := n.Move(start, MoveIntent{}, 0); moved || got != start {
		t.Errorf("Expected idle intent to keep position, got %v moved=%v", got, moved)
	}
}

func TestPrimaryClosesBySpeed(t *testing.T) {
	p := NewPursuer(DefaultPursuitConfig(), openOracle())
	player := mgl64.Vec3{0, 0, 0}
	p.Spawn([]mgl64.Vec3{{3, 0, 4}})

	p.Step(player, 0)

	m := p.Monsters()[0]
	got := vmath.Distance(m.Position, player)
	if math.Abs(got-(5-0.06)) > tolerance {
		t.Errorf("Expected distance %v, got %v", 5-0.06, got)
	}
	if m.Role != RolePrimary {
		t.Errorf("Expected primary role, got %v", m.Role)
	}
}

func TestCaptureAppliesDamageOnce(t *testing.T) {
	p := NewPursuer(DefaultPursuitConfig(), openOracle())
	p.Spawn([]mgl64.Vec3{{0, 2, 0}})

	c := p.Step(mgl64.Vec3{0, 2, 1.9}, 0)
	if c.Hits != 1 {
		t.Fatalf("Expected 1 hit, got %d", c.Hits)
	}
	if c.Damage != 0.5 {
		t.Errorf("Expected damage 0.5, got %v", c.Damage)
	}
	if c.Sanity != 1 {
		t.Errorf("Expected sanity penalty 1, got %v", c.Sanity)
	}

	far := p.Step(mgl64.Vec3{0, 2, 30}, 0)
	if far.Hits != 0 {
		t.Errorf("Expected no hit at range, got %d", far.Hits)
	}
}

func TestFlankerCosmeticMovesTowardPlayer(t *testing.T) {
	p := NewPursuer(DefaultPursuitConfig(), openOracle())
	player := mgl64.Vec3{0, 1.6, 0}
	p.Spawn([]mgl64.Vec3{{30, 1.6, 30}, {-15, 1.6, 0}})

	elapsed := 3 * time.Second
	p.Step(player, elapsed)

	f := p.Monsters()[1]
	if f.Role != RoleFlanker {
		t.Fatalf("Expected flanker role, got %v", f.Role)
	}
	want := mgl64.Vec3{-15 + 0.05, 1.6, 0}
	if !near(f.Position, want, tolerance) {
		t.Errorf("Expected flanker at %v, got %v", want, f.Position)
	}

	ring := FlankTarget(player, 10, 1, math.Pi/2, elapsed, 1)
	if !near(f.Target, ring, tolerance) {
		t.Errorf("Expected ring target %v, got %v", ring, f.Target)
	}
	// Facing is resolved before the step
	if yaw := vmath.LookYaw(mgl64.Vec3{-15, 1.6, 0}, ring); math.Abs(f.Yaw-yaw) > tolerance {
		t.Errorf("Expected yaw %v facing ring target, got %v", yaw, f.Yaw)
	}
}

func TestFlankerOrbitMovesTowardRing(t *testing.T) {
	cfg := DefaultPursuitConfig()
	cfg.Mode = FlankOrbit
	p := NewPursuer(cfg, openOracle())
	player := mgl64.Vec3{0, 1.6, 0}
	start := mgl64.Vec3{-15, 1.6, 0}
	p.Spawn([]mgl64.Vec3{{30, 1.6, 30}, start})

	p.Step(player, 0)

	f := p.Monsters()[1]
	dir := vmath.Normalize(f.Target.Sub(start))
	want := start.Add(dir.Mul(cfg.FlankerSpeed))
	if !near(f.Position, want, tolerance) {
		t.Errorf("Expected orbit step to %v, got %v", want, f.Position)
	}
}

func TestPursuitBlockedStaysPut(t *testing.T) {
	p := NewPursuer(DefaultPursuitConfig(), NewOracle(DefaultOracleConfig(), wallAt()))
	start := mgl64.Vec3{8.47, 1.6, 0}
	p.Spawn([]mgl64.Vec3{start})

	p.Step(mgl64.Vec3{20, 1.6, 0}, 0)

	if got := p.Monsters()[0].Position; got != start {
		t.Errorf("Expected blocked monster to stay at %v, got %v", start, got)
	}
}

func TestTransientExpiry(t *testing.T) {
	p := NewPursuer(DefaultPursuitConfig(), openOracle())
	p.Spawn([]mgl64.Vec3{{5, 2, 5}})
	m := p.SpawnTransient(mgl64.Vec3{-5, 2, -5}, 10*time.Second)
	if m.Role != RoleFlanker || m.Index != 1 {
		t.Errorf("Expected transient flanker index 1, got %v index %d", m.Role, m.Index)
	}

	if n := p.Expire(9 * time.Second); n != 0 || p.Count() != 2 {
		t.Errorf("Expected nothing expired early, removed %d count %d", n, p.Count())
	}
	if n := p.Expire(10 * time.Second); n != 1 || p.Count() != 1 {
		t.Errorf("Expected transient removed, removed %d count %d", n, p.Count())
	}

	p.Clear()
	if p.Count() != 0 {
		t.Errorf("Expected empty roster after Clear, got %d", p.Count())
	}
}

func TestParseFlankMode(t *testing.T) {
	for in, want := range map[string]FlankMode{"": FlankCosmetic, "cosmetic": FlankCosmetic, " Orbit ": FlankOrbit} {
		got, err := ParseFlankMode(in)
		if err != nil || got != want {
			t.Errorf("ParseFlankMode(%q): expected %v, got %v err=%v", in, want, got, err)
		}
	}
	if _, err := ParseFlankMode("spiral"); err == nil {
		t.Error("Expected error for unknown mode")
	}
}
