package policy

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestNewUnknownMechanism(t *testing.T) {
	if _, err := New("simulated-annealing", Config{Arms: 4}); !errors.Is(err, ErrUnknownMechanism) {
		t.Fatalf("want ErrUnknownMechanism, got %v", err)
	}
}

func TestNewRequiresArms(t *testing.T) {
	if _, err := New(Roulette, Config{Arms: 0}); err == nil {
		t.Fatal("zero arms accepted")
	}
}

func TestNewBuildsEveryMechanism(t *testing.T) {
	for _, mechanism := range Mechanisms() {
		pol, err := New(mechanism, Config{Arms: 8, Capacity: 100})
		if err != nil {
			t.Fatalf("%s: %v", mechanism, err)
		}
		if pol.Name() != string(mechanism) {
			t.Fatalf("%s: Name() = %q", mechanism, pol.Name())
		}
	}
}

func TestSelectStaysInRange(t *testing.T) {
	for _, mechanism := range Mechanisms() {
		pol, err := New(mechanism, Config{Arms: 8, Capacity: 100})
		if err != nil {
			t.Fatalf("%s: %v", mechanism, err)
		}
		rng := rand.New(rand.NewSource(3))
		for i := 0; i < 500; i++ {
			arm := pol.Select(rng)
			if arm < 0 || arm >= 8 {
				t.Fatalf("%s: arm %d out of range", mechanism, arm)
			}
			pol.Update(arm, float64(i%21-10))
		}
	}
}

func TestRouletteRewardsOnlyPositive(t *testing.T) {
	pol := NewRoulettePolicy(3)

	pol.Update(0, 5)
	pol.Update(1, -8)
	pol.Update(2, 0)

	weights := pol.Weights()
	if weights[0] != 6 {
		t.Fatalf("weights[0] = %v, want 6", weights[0])
	}
	if weights[1] != 1 || weights[2] != 1 {
		t.Fatalf("negative/zero rewards changed weights: %v", weights)
	}
}

func TestRouletteKeepsSelectionFloor(t *testing.T) {
	pol := NewRoulettePolicy(3)
	// Heavily reward arm 0; the others must still be drawn eventually.
	for i := 0; i < 100; i++ {
		pol.Update(0, 10)
	}

	rng := rand.New(rand.NewSource(11))
	seen := make(map[int]bool)
	for i := 0; i < 20000; i++ {
		seen[pol.Select(rng)] = true
	}
	for arm := 0; arm < 3; arm++ {
		if !seen[arm] {
			t.Fatalf("arm %d was never selected despite the weight floor", arm)
		}
	}
}

func TestRouletteFavorsRewardedArm(t *testing.T) {
	pol := NewRoulettePolicy(2)
	for i := 0; i < 50; i++ {
		pol.Update(1, 10)
	}

	rng := rand.New(rand.NewSource(5))
	hits := 0
	const draws = 2000
	for i := 0; i < draws; i++ {
		if pol.Select(rng) == 1 {
			hits++
		}
	}
	if hits < draws*9/10 {
		t.Fatalf("rewarded arm drawn only %d/%d times", hits, draws)
	}
}

func TestEpsilonGreedyTracksIncrementalMean(t *testing.T) {
	pol := NewEpsilonGreedyPolicy(2)

	pol.Update(0, 10)
	pol.Update(0, 20)
	pol.Update(0, 30)

	avg := pol.Averages()
	if avg[0] != 20 {
		t.Fatalf("avg[0] = %v, want 20", avg[0])
	}
	if avg[1] != 0 {
		t.Fatalf("avg[1] = %v, want 0", avg[1])
	}
}

func TestEpsilonDecaysToFloor(t *testing.T) {
	pol := NewEpsilonGreedyPolicy(2)
	if pol.Epsilon() != defaultEpsilon {
		t.Fatalf("initial epsilon = %v, want %v", pol.Epsilon(), defaultEpsilon)
	}

	prev := pol.Epsilon()
	for i := 0; i < 5000; i++ {
		pol.Update(0, 1)
		eps := pol.Epsilon()
		if eps > prev {
			t.Fatalf("epsilon rose from %v to %v", prev, eps)
		}
		prev = eps
	}
	if pol.Epsilon() != defaultEpsilonMin {
		t.Fatalf("epsilon = %v after heavy decay, want floor %v", pol.Epsilon(), defaultEpsilonMin)
	}
}

func TestChooserTieBreaksToLessUsedArm(t *testing.T) {
	chooser := NewEpsilonChooser()
	chooser.epsilon = 0 // force pure exploitation

	rng := rand.New(rand.NewSource(1))
	scores := []float64{5, 5, 3}
	counts := []int{10, 4, 0}
	if arm := chooser.Choose(rng, scores, counts); arm != 1 {
		t.Fatalf("tie broke to arm %d, want 1 (fewer applications)", arm)
	}
	if arm := chooser.Choose(rng, scores, nil); arm != 0 {
		t.Fatalf("nil counts tie broke to arm %d, want 0 (lower index)", arm)
	}
}

func TestChooserBoostRestoresInitialEpsilon(t *testing.T) {
	chooser := NewEpsilonChooser()
	for i := 0; i < 200; i++ {
		chooser.Decay()
	}
	if chooser.Epsilon() >= defaultEpsilon {
		t.Fatal("decay had no effect")
	}

	chooser.Boost()
	if chooser.Epsilon() != defaultEpsilon {
		t.Fatalf("boost restored epsilon to %v, want %v", chooser.Epsilon(), defaultEpsilon)
	}
}

func TestQEstimatorNormalizesAndClips(t *testing.T) {
	est := NewQEstimator(2, 100)

	est.Observe(0, 50) // r = 0.5
	if got := est.Values()[0]; math.Abs(got-defaultLearningRate*0.5) > 1e-12 {
		t.Fatalf("q[0] = %v, want %v", got, defaultLearningRate*0.5)
	}

	est = NewQEstimator(2, 100)
	est.Observe(0, 1000) // clips to 1
	if got := est.Values()[0]; math.Abs(got-defaultLearningRate) > 1e-12 {
		t.Fatalf("clipped q[0] = %v, want %v", got, defaultLearningRate)
	}

	est = NewQEstimator(2, 100)
	est.Observe(0, -1000) // clips to -1
	if got := est.Values()[0]; math.Abs(got+defaultLearningRate) > 1e-12 {
		t.Fatalf("clipped q[0] = %v, want %v", got, -defaultLearningRate)
	}
}

func TestQEstimatorZeroCapacityScale(t *testing.T) {
	est := NewQEstimator(1, 0)
	est.Observe(0, 0.5) // scale clamps to 1, so r = 0.5
	if got := est.Values()[0]; math.Abs(got-defaultLearningRate*0.5) > 1e-12 {
		t.Fatalf("q[0] = %v, want %v", got, defaultLearningRate*0.5)
	}
}

func TestSoftmaxTemperatureAnneals(t *testing.T) {
	pol := NewSoftmaxPolicy(4, 100)
	if pol.Temperature() != defaultTemperature {
		t.Fatalf("initial temperature = %v", pol.Temperature())
	}

	for i := 0; i < 5000; i++ {
		pol.Update(0, 1)
	}
	if pol.Temperature() != defaultTemperatureMin {
		t.Fatalf("temperature = %v, want floor %v", pol.Temperature(), defaultTemperatureMin)
	}
}

func TestSoftmaxExploitsAtLowTemperature(t *testing.T) {
	pol := NewSoftmaxPolicy(4, 100)
	// Push arm 2's Q-value up and anneal the temperature down.
	for i := 0; i < 1000; i++ {
		pol.Update(2, 100)
	}

	rng := rand.New(rand.NewSource(9))
	hits := 0
	const draws = 2000
	for i := 0; i < draws; i++ {
		if pol.Select(rng) == 2 {
			hits++
		}
	}
	if hits < draws*9/10 {
		t.Fatalf("dominant arm drawn only %d/%d times at low temperature", hits, draws)
	}
}

func TestAdaptiveStagnationSignal(t *testing.T) {
	pol := NewAdaptivePolicy(4, 100, 5)

	for i := 0; i < 4; i++ {
		if pol.ObserveBest(false) {
			t.Fatalf("restart signaled after %d stagnant iterations, limit is 5", i+1)
		}
	}
	if !pol.ObserveBest(false) {
		t.Fatal("restart not signaled at the stagnation limit")
	}

	// Counter resets after firing: another full window is needed.
	for i := 0; i < 4; i++ {
		if pol.ObserveBest(false) {
			t.Fatal("restart signaled before a full second window")
		}
	}
	if !pol.ObserveBest(false) {
		t.Fatal("second restart not signaled")
	}
}

func TestAdaptiveImprovementResetsStagnation(t *testing.T) {
	pol := NewAdaptivePolicy(4, 100, 3)

	pol.ObserveBest(false)
	pol.ObserveBest(false)
	if pol.ObserveBest(true) {
		t.Fatal("improvement must not signal a restart")
	}
	// The improvement reset the counter, so two more stagnant iterations
	// are not enough.
	pol.ObserveBest(false)
	if pol.ObserveBest(false) {
		t.Fatal("restart signaled too early after an improvement")
	}
	if !pol.ObserveBest(false) {
		t.Fatal("restart not signaled after a full stagnant window")
	}
}

func TestAdaptiveRestartBoostsEpsilon(t *testing.T) {
	pol := NewAdaptivePolicy(4, 100, 2)
	for i := 0; i < 500; i++ {
		pol.Update(0, 1)
	}
	if pol.Epsilon() >= defaultEpsilon {
		t.Fatal("epsilon never decayed")
	}

	pol.ObserveBest(false)
	if !pol.ObserveBest(false) {
		t.Fatal("restart not signaled")
	}
	if pol.Epsilon() != defaultEpsilon {
		t.Fatalf("epsilon = %v after restart, want %v", pol.Epsilon(), defaultEpsilon)
	}
}
