// policy/store.go
package policy

import (
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"

	logger "github.com/dev-rpatel/janus/logging"
	"github.com/dev-rpatel/janus/model"
)

// Source yields the raw bytes of a policy document. Injecting the source
// keeps the store free of any fixed on-disk location and lets tests feed
// in-memory documents.
type Source func() ([]byte, error)

// FileSource reads the policy document from path on every (re)load.
func FileSource(path string) Source {
	return func() ([]byte, error) {
		return os.ReadFile(path)
	}
}

// BytesSource serves a fixed in-memory document.
func BytesSource(document []byte) Source {
	return func() ([]byte, error) {
		return document, nil
	}
}

// Store holds the active PolicySet behind an atomic pointer. Evaluations
// read a snapshot once and keep it for their whole run; Reload parses the
// document first and swaps the pointer only on success, so readers never
// observe a half-updated or invalid set.
type Store struct {
	source Source
	active atomic.Pointer[model.PolicySet]
}

// NewStore loads the initial policy set from source. It fails, rather than
// starting with no policies, when the document cannot be parsed.
func NewStore(source Source) (*Store, error) {
	store := &Store{source: source}
	if err := store.Reload(); err != nil {
		return nil, err
	}
	return store, nil
}

// Active returns the current policy-set snapshot.
func (s *Store) Active() *model.PolicySet {
	return s.active.Load()
}

// Reload re-reads and re-parses the policy document and atomically swaps it
// in. On any error the previously loaded set keeps serving.
func (s *Store) Reload() error {
	documentBytes, err := s.source()
	if err != nil {
		return fmt.Errorf("read policy document: %w", err)
	}

	policySet, err := LoadPolicies(documentBytes)
	if err != nil {
		return err
	}

	s.active.Store(policySet)
	logger.Info("Policy set loaded",
		zap.String("policySetID", policySet.PolicySetID),
		zap.Int("policies", len(policySet.Policies)))
	return nil
}
