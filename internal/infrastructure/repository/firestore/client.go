package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	colTeams              = "teams"
	colPlayers            = "players"
	colMatches            = "matches"
	colGames              = "games"
	colPerformances       = "performances"
	colGroups             = "groups"
	colFantasyLineups     = "fantasyLineups"
	colRounds             = "rounds"
	colPlayerRoundStats   = "playerRoundStats"
	colFantasyLeaderboard = "fantasyLeaderboards"
	colTournamentStats    = "tournamentStats"
	colPlayerStats        = "playerStats"
	colTeamStats          = "teamStats"
	colPickems            = "pickems"
	colUserProfiles       = "userProfiles"

	docLeaderboard     = "current"
	docTournamentStats = "tournament-stats"

	// maxBatchWrites is the Firestore limit on writes per commit.
	maxBatchWrites = 500
)

type Config struct {
	ProjectID       string
	CredentialsFile string
}

// NewClient opens a Firestore client. FIRESTORE_EMULATOR_HOST is honored by
// the SDK itself.
func NewClient(ctx context.Context, cfg Config) (*firestore.Client, error) {
	projectID := strings.TrimSpace(cfg.ProjectID)
	if projectID == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}
	var opts []option.ClientOption
	if path := strings.TrimSpace(cfg.CredentialsFile); path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return client, nil
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// readAll drains a document iterator.
func readAll(iter *firestore.DocumentIterator) ([]*firestore.DocumentSnapshot, error) {
	defer iter.Stop()

	var docs []*firestore.DocumentSnapshot
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
}

func listRefs(ctx context.Context, col *firestore.CollectionRef) ([]*firestore.DocumentRef, error) {
	iter := col.DocumentRefs(ctx)
	var refs []*firestore.DocumentRef
	for {
		ref, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return refs, nil
		}
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
}

type writeOp func(b *firestore.WriteBatch)

// batchWriter queues writes and commits them in chunks of at most limit
// writes. Chunks are committed in order; a failed chunk stops the rest.
type batchWriter struct {
	ops    []writeOp
	limit  int
	commit func(ctx context.Context, ops []writeOp) error
}

func newBatchWriter(client *firestore.Client) *batchWriter {
	return &batchWriter{
		limit: maxBatchWrites,
		commit: func(ctx context.Context, ops []writeOp) error {
			batch := client.Batch()
			for _, op := range ops {
				op(batch)
			}
			_, err := batch.Commit(ctx)
			return err
		},
	}
}

func (w *batchWriter) Set(ref *firestore.DocumentRef, data any, opts ...firestore.SetOption) {
	w.ops = append(w.ops, func(b *firestore.WriteBatch) { b.Set(ref, data, opts...) })
}

func (w *batchWriter) Create(ref *firestore.DocumentRef, data any) {
	w.ops = append(w.ops, func(b *firestore.WriteBatch) { b.Create(ref, data) })
}

func (w *batchWriter) Update(ref *firestore.DocumentRef, updates []firestore.Update) {
	w.ops = append(w.ops, func(b *firestore.WriteBatch) { b.Update(ref, updates) })
}

func (w *batchWriter) Delete(ref *firestore.DocumentRef) {
	w.ops = append(w.ops, func(b *firestore.WriteBatch) { b.Delete(ref) })
}

func (w *batchWriter) Len() int {
	return len(w.ops)
}

// errBatchTooLarge is returned by CommitAtomic when the queued writes do not
// fit in a single commit.
var errBatchTooLarge = errors.New("writes exceed one firestore batch")

func (w *batchWriter) batchLimit() int {
	if w.limit <= 0 {
		return maxBatchWrites
	}
	return w.limit
}

// CommitAtomic flushes every queued write in one commit, or writes nothing
// when they do not fit.
func (w *batchWriter) CommitAtomic(ctx context.Context) error {
	if len(w.ops) == 0 {
		return nil
	}
	if len(w.ops) > w.batchLimit() {
		return fmt.Errorf("%w: %d writes, limit %d", errBatchTooLarge, len(w.ops), w.batchLimit())
	}
	if err := w.commit(ctx, w.ops); err != nil {
		return err
	}
	w.ops = nil
	return nil
}

// Commit flushes every queued write and returns the number of commits made.
func (w *batchWriter) Commit(ctx context.Context) (int, error) {
	limit := w.batchLimit()
	commits := 0
	for start := 0; start < len(w.ops); start += limit {
		end := min(start+limit, len(w.ops))
		if err := w.commit(ctx, w.ops[start:end]); err != nil {
			return commits, fmt.Errorf("commit batch %d (writes %d-%d): %w", commits+1, start, end-1, err)
		}
		commits++
	}
	w.ops = nil
	return commits, nil
}
