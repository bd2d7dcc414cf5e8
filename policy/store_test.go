// policy/store_test.go
package policy_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-rpatel/janus/logging"
	"github.com/dev-rpatel/janus/policy"
)

func init() {
	logging.InitTestLogger()
}

func TestStore_InitialLoadFailure(t *testing.T) {
	_, err := policy.NewStore(policy.BytesSource([]byte(`not json`)))
	require.Error(t, err)
}

func TestStore_RejectedReloadKeepsPreviousSet(t *testing.T) {
	source := &switchableSource{document: []byte(validDocument)}
	store, err := policy.NewStore(source.read)
	require.NoError(t, err)

	before := store.Active()
	require.NotNil(t, before)

	source.set([]byte(`{"policy_set_id": "broken"`))
	err = store.Reload()
	require.Error(t, err)

	// The active snapshot is untouched by the failed reload.
	assert.Same(t, before, store.Active())
}

func TestStore_ReloadSwapsAtomically(t *testing.T) {
	source := &switchableSource{document: []byte(validDocument)}
	store, err := policy.NewStore(source.read)
	require.NoError(t, err)

	const readers = 8
	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Readers continuously take snapshots; every snapshot must be a
	// complete, internally consistent set.
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snapshot := store.Active()
				if snapshot == nil {
					t.Error("observed nil policy set during reload")
					return
				}
				if len(snapshot.Policies) == 0 {
					t.Error("observed empty policy set during reload")
					return
				}
			}
		}()
	}

	for i := 0; i < 100; i++ {
		require.NoError(t, store.Reload())
	}
	close(stop)
	wg.Wait()
}

type switchableSource struct {
	mu       sync.Mutex
	document []byte
}

func (s *switchableSource) set(document []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = document
}

func (s *switchableSource) read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document, nil
}
