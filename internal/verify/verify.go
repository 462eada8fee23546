// Package verify checks that repeated runs of the same requirement produce
// byte-identical artifacts.
package verify

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/axiomgrid/internal/ctxlog"
	"github.com/specialistvlad/axiomgrid/internal/executor"
)

// ErrNonDeterministic reports that runs disagreed.
var ErrNonDeterministic = errors.New("runs produced different artifacts")

// RunFunc performs one complete run.
type RunFunc func(ctx context.Context) (*executor.RunResult, error)

// Report summarises a verification.
type Report struct {
	Runs int `json:"runs"`
	// Hashes holds one digest per run, in run order.
	Hashes []string `json:"hashes"`
	// Entropy is the number of distinct digests; 1 means deterministic.
	Entropy int `json:"entropy"`
}

// Deterministic reports whether every run hashed the same.
func (r Report) Deterministic() bool {
	return r.Entropy == 1
}

// Hash digests the produced files of a result: path, language, pass flag and
// content, in order. Run IDs and iteration counts do not participate.
func Hash(r *executor.RunResult) string {
	h := sha256.New()
	for _, f := range r.Files {
		for _, field := range []string{f.Path, f.Language, strconv.FormatBool(f.Passed), f.Content} {
			// Length-prefixed so field boundaries cannot shift.
			fmt.Fprintf(h, "%d:%s", len(field), field)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Check invokes fn runs times and compares the hashes. A run error aborts
// the check. When hashes differ the returned error wraps ErrNonDeterministic.
func Check(ctx context.Context, runs int, fn RunFunc) (Report, error) {
	if runs < 2 {
		return Report{}, fmt.Errorf("verification needs at least 2 runs, got %d", runs)
	}
	logger := ctxlog.FromContext(ctx)

	report := Report{Runs: runs}
	distinct := make(map[string]struct{})
	for i := 1; i <= runs; i++ {
		result, err := fn(ctx)
		if err != nil {
			return report, fmt.Errorf("run %d of %d: %w", i, runs, err)
		}
		digest := Hash(result)
		report.Hashes = append(report.Hashes, digest)
		distinct[digest] = struct{}{}
		logger.Info("Verification run finished.", "run", i, "run_id", result.RunID, "hash", digest[:12])
	}
	report.Entropy = len(distinct)

	if !report.Deterministic() {
		return report, fmt.Errorf("%w: %d distinct hashes over %d runs (%s)",
			ErrNonDeterministic, report.Entropy, runs, strings.Join(short(report.Hashes), ", "))
	}
	return report, nil
}

func short(hashes []string) []string {
	out := make([]string, len(hashes))
	for i, h := range hashes {
		out[i] = h[:12]
	}
	return out
}
