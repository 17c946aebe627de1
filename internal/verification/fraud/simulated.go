package fraud

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"

	"quod/internal/verification/models"
)

// DecisionSource supplies the per-category verdicts behind the simulated
// assessor. Tests inject a seeded or fixed source; there is deliberately no
// ambient-randomness fallback.
type DecisionSource interface {
	// Triggered reports whether the given category fires at the given
	// probability for the current submission.
	Triggered(category string, probability float64) bool
}

// SeededSource is a DecisionSource backed by a seeded PRNG. Safe for
// concurrent use.
type SeededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource constructs a SeededSource from the given seed.
func NewSeededSource(seed int64) *SeededSource {
	return &SeededSource{rng: rand.New(rand.NewSource(seed))}
}

// Triggered draws from the seeded PRNG.
func (s *SeededSource) Triggered(_ string, probability float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < probability
}

// NeverSource is a DecisionSource that never triggers any category. Useful as
// a default in wiring where fraud simulation is unwanted.
type NeverSource struct{}

// Triggered always reports false.
func (NeverSource) Triggered(string, float64) bool { return false }

// categoryProbability is the stand-in trigger rate for every category,
// matching the reference detector simulation.
const categoryProbability = 0.5

// SimulatedAssessor evaluates each fraud category independently through the
// injected decision source. It never returns an error; unavailability belongs
// to real detector implementations.
type SimulatedAssessor struct {
	source DecisionSource
	logger *slog.Logger
}

// NewSimulatedAssessor constructs the stand-in assessor.
func NewSimulatedAssessor(source DecisionSource, logger *slog.Logger) *SimulatedAssessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimulatedAssessor{source: source, logger: logger}
}

// AssessFacial evaluates the facial presentation-attack categories.
func (a *SimulatedAssessor) AssessFacial(ctx context.Context, _ models.ImageAsset) (models.FraudAssessment, error) {
	return a.assess(ctx, FraudDeepfake, FraudMask, FraudPhotoOfPhoto)
}

// AssessFingerprint evaluates the fingerprint spoofing categories.
func (a *SimulatedAssessor) AssessFingerprint(ctx context.Context, _ models.ImageAsset) (models.FraudAssessment, error) {
	return a.assess(ctx, FraudSyntheticFingerprint, FraudFingerprintReplica)
}

// AssessDocumentPair evaluates the document manipulation categories.
func (a *SimulatedAssessor) AssessDocumentPair(ctx context.Context, _, _ models.ImageAsset) (models.FraudAssessment, error) {
	return a.assess(ctx, FraudDoctoredDocument, FraudFakeDocument, FraudFaceDocumentMismatch)
}

// assess checks categories in their declared order so FraudTypes stays
// deterministic for a given decision source.
func (a *SimulatedAssessor) assess(ctx context.Context, categories ...string) (models.FraudAssessment, error) {
	if err := ctx.Err(); err != nil {
		return models.FraudAssessment{}, err
	}

	var detected []string
	for _, category := range categories {
		a.logger.DebugContext(ctx, "checking fraud category", "category", category)
		if a.source.Triggered(category, categoryProbability) {
			detected = append(detected, category)
		}
	}
	return models.NewFraudAssessment(detected), nil
}
