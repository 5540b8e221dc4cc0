package sync

import (
	"context"
	"sync"
	"time"

	"github.com/xelth-com/goodstrack/internal/config"
	"github.com/xelth-com/goodstrack/internal/models"
	"github.com/xelth-com/goodstrack/internal/remote"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine reconciles the local store with the remote backend.
// Local is the source of truth between pulls; remote is authoritative on pull.
type Engine struct {
	mu sync.RWMutex

	local    Local
	remote   Remote
	logger   *zap.Logger
	interval time.Duration

	// pushMu serializes push passes from the timer, triggers and callers
	pushMu sync.Mutex

	// State
	isRunning bool
	lastPush  *SyncResult
	lastPull  *SyncResult

	// Channels, recreated on every Start
	stopChan    chan struct{}
	doneChan    chan struct{}
	triggerChan chan struct{}
}

// NewEngine creates a sync engine. cfg may be nil for defaults.
func NewEngine(local Local, rem Remote, cfg *config.SyncConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		local:    local,
		remote:   rem,
		logger:   logger.Named("sync"),
		interval: cfg.Interval(),
	}
}

// SetInterval changes the period used by the next Start
func (e *Engine) SetInterval(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if d > 0 {
		e.interval = d
	}
}

// Start launches the background push loop. Calling Start while running is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isRunning {
		e.logger.Debug("Auto-sync already running")
		return
	}

	e.isRunning = true
	e.stopChan = make(chan struct{})
	e.doneChan = make(chan struct{})
	e.triggerChan = make(chan struct{}, 1)

	go e.autoSyncLoop(e.interval, e.stopChan, e.doneChan, e.triggerChan)
	e.logger.Info("✅ Auto-sync started", zap.Duration("interval", e.interval))
}

// Stop halts the background loop and waits for an in-flight pass to finish.
// Calling Stop when not running is a no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.isRunning {
		e.mu.Unlock()
		return
	}
	e.isRunning = false
	close(e.stopChan)
	done := e.doneChan
	e.mu.Unlock()

	<-done
	e.logger.Info("🛑 Auto-sync stopped")
}

// IsRunning reports whether the background loop is active
func (e *Engine) IsRunning() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.isRunning
}

// TriggerPush asks the running loop for an immediate push. It never blocks.
func (e *Engine) TriggerPush() {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.isRunning {
		return
	}
	select {
	case e.triggerChan <- struct{}{}:
	default:
	}
}

func (e *Engine) autoSyncLoop(interval time.Duration, stop <-chan struct{}, done chan<- struct{}, trigger <-chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		select {
		case <-ticker.C:
		case <-trigger:
		case <-stop:
			return
		}
		if ctx.Err() != nil {
			return
		}
		if _, err := e.PushAll(ctx); err != nil && ctx.Err() == nil {
			e.logger.Error("❌ Auto-sync push aborted", zap.Error(err))
		}
	}
}

// PushAll upserts every local user and then every local parcel to the remote
// backend, one record at a time. A failed record is logged and counted and the
// pass continues. The returned error is non-nil only when the pass itself was
// aborted, e.g. by context cancellation.
func (e *Engine) PushAll(ctx context.Context) (*SyncResult, error) {
	e.pushMu.Lock()
	defer e.pushMu.Unlock()

	result := &SyncResult{Direction: DirectionPush, Timestamp: time.Now()}

	if !e.remote.Configured() {
		e.logger.Debug("Remote not configured, push skipped")
		result.Skipped = true
		result.Success = true
		e.record(result)
		return result, nil
	}

	e.logger.Info("⬆️ Pushing local records")

	users := e.local.Users(ctx)
	userResult := EntityResult{Entity: EntityTypeUser}
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return e.abort(result, userResult, err)
		}
		res := e.remote.UpsertUser(ctx, u)
		if res.OK() {
			userResult.Synced++
			continue
		}
		userResult.Failed++
		result.Errors = append(result.Errors, errorText(res.Err, "user "+u.ID))
		e.logger.Warn("⚠️ User push failed, continuing", zap.String("user_id", u.ID), zap.Stringer("outcome", res.Outcome))
	}
	result.Entities = append(result.Entities, userResult)

	parcels := e.local.Parcels(ctx)
	parcelResult := EntityResult{Entity: EntityTypeParcel}
	for _, p := range parcels {
		if err := ctx.Err(); err != nil {
			return e.abort(result, parcelResult, err)
		}
		res := e.remote.UpsertParcel(ctx, p)
		if res.OK() {
			parcelResult.Synced++
			continue
		}
		parcelResult.Failed++
		result.Errors = append(result.Errors, errorText(res.Err, "parcel "+p.ReferenceNumber))
		e.logger.Warn("⚠️ Parcel push failed, continuing", zap.String("reference", p.ReferenceNumber), zap.Stringer("outcome", res.Outcome))
	}
	result.Entities = append(result.Entities, parcelResult)

	result.Success = result.Failed() == 0
	result.Duration = time.Since(result.Timestamp)
	e.record(result)

	e.logger.Info("✅ Push completed",
		zap.Int("users", userResult.Synced),
		zap.Int("parcels", parcelResult.Synced),
		zap.Int("failed", result.Failed()),
		zap.Duration("duration", result.Duration))
	return result, nil
}

func (e *Engine) abort(result *SyncResult, partial EntityResult, err error) (*SyncResult, error) {
	result.Entities = append(result.Entities, partial)
	result.Errors = append(result.Errors, err.Error())
	result.Duration = time.Since(result.Timestamp)
	e.record(result)
	return result, err
}

// PullAll fetches all users and parcels from the remote backend. Each local
// collection is replaced wholesale only when its fetch succeeded with at least
// one record; failed or empty fetches leave the local collection untouched.
func (e *Engine) PullAll(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{Direction: DirectionPull, Timestamp: time.Now()}

	if !e.remote.Configured() {
		e.logger.Debug("Remote not configured, pull skipped")
		result.Skipped = true
		result.Success = true
		e.record(result)
		return result, nil
	}

	e.logger.Info("⬇️ Pulling remote records")

	var usersRes remote.Result[[]models.User]
	var parcelsRes remote.Result[[]models.Parcel]

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		usersRes = e.remote.ListUsers(gctx)
		return nil
	})
	g.Go(func() error {
		parcelsRes = e.remote.ListParcels(gctx)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		result.Errors = append(result.Errors, err.Error())
		result.Duration = time.Since(result.Timestamp)
		e.record(result)
		return result, err
	}

	userResult := EntityResult{Entity: EntityTypeUser, Outcome: usersRes.Outcome.String()}
	if usersRes.OK() && len(usersRes.Value) > 0 {
		e.local.SaveUsers(ctx, usersRes.Value)
		userResult.Synced = len(usersRes.Value)
		userResult.Replaced = true
	} else if usersRes.Failed() {
		result.Errors = append(result.Errors, errorText(usersRes.Err, "users"))
	}

	parcelResult := EntityResult{Entity: EntityTypeParcel, Outcome: parcelsRes.Outcome.String()}
	if parcelsRes.OK() && len(parcelsRes.Value) > 0 {
		e.local.SaveParcels(ctx, parcelsRes.Value)
		parcelResult.Synced = len(parcelsRes.Value)
		parcelResult.Replaced = true
	} else if parcelsRes.Failed() {
		result.Errors = append(result.Errors, errorText(parcelsRes.Err, "parcels"))
	}

	result.Entities = []EntityResult{userResult, parcelResult}
	result.Success = len(result.Errors) == 0
	result.Duration = time.Since(result.Timestamp)
	e.record(result)

	e.logger.Info("✅ Pull completed",
		zap.Int("users", userResult.Synced),
		zap.Int("parcels", parcelResult.Synced),
		zap.Bool("success", result.Success),
		zap.Duration("duration", result.Duration))
	return result, nil
}

func (e *Engine) record(result *SyncResult) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if result.Direction == DirectionPush {
		e.lastPush = result
	} else {
		e.lastPull = result
	}
}

// Status returns a snapshot of the engine state
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Status{
		Running:          e.isRunning,
		RemoteConfigured: e.remote.Configured(),
		Interval:         e.interval,
		LastPush:         e.lastPush,
		LastPull:         e.lastPull,
	}
}

func errorText(err error, subject string) string {
	if err == nil {
		return subject + ": not written"
	}
	return subject + ": " + err.Error()
}
