// Package remote maps records onto the relational backend. Calls never fail
// loudly: each returns a Result tagged OK, Empty, Failed or Skipped so callers
// can tell "no data" from "backend unreachable".
package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xelth-com/goodstrack/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Outcome tags a remote call result
type Outcome int

const (
	OutcomeOK      Outcome = iota // value present
	OutcomeEmpty                  // call succeeded, nothing matched
	OutcomeFailed                 // backend error, Err is set
	OutcomeSkipped                // remote not configured
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	}
	return "unknown"
}

// Result is the tagged outcome of a remote call
type Result[T any] struct {
	Value   T
	Outcome Outcome
	Err     error
}

func (r Result[T]) OK() bool     { return r.Outcome == OutcomeOK }
func (r Result[T]) Failed() bool { return r.Outcome == OutcomeFailed }

func resultOK[T any](v T) Result[T] { return Result[T]{Value: v, Outcome: OutcomeOK} }
func resultEmpty[T any]() Result[T] { return Result[T]{Outcome: OutcomeEmpty} }
func resultSkipped[T any]() Result[T] {
	return Result[T]{Outcome: OutcomeSkipped}
}
func resultFailed[T any](err error) Result[T] {
	return Result[T]{Outcome: OutcomeFailed, Err: fmt.Errorf("%w: %v", models.ErrRemoteUnavailable, err)}
}

// Adapter is the Remote Store Adapter
type Adapter struct {
	db      *gorm.DB
	logger  *zap.Logger
	timeout time.Duration
	now     func() time.Time
}

// Option customizes an Adapter
type Option func(*Adapter)

// WithTimeout bounds every remote call
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) { a.timeout = d }
}

// WithClock overrides the time source used for updated_at stamps
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

// New creates an adapter. A nil db yields an adapter that is not configured
// and skips every call.
func New(db *gorm.DB, logger *zap.Logger, opts ...Option) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Adapter{db: db, logger: logger.Named("remote"), now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Configured reports whether a backend connection is available
func (a *Adapter) Configured() bool {
	return a != nil && a.db != nil
}

func (a *Adapter) session(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if a.timeout > 0 {
		ctx, cancel := context.WithTimeout(ctx, a.timeout)
		return a.db.WithContext(ctx), cancel
	}
	return a.db.WithContext(ctx), func() {}
}

func (a *Adapter) skip(op string) {
	a.logger.Debug("Remote not configured, skipping", zap.String("op", op))
}

func (a *Adapter) fail(op string, err error, fields ...zap.Field) {
	a.logger.Error("❌ Remote call failed", append(fields, zap.String("op", op), zap.Error(err))...)
}

// Migrate creates or updates the remote tables
func (a *Adapter) Migrate(ctx context.Context) error {
	if !a.Configured() {
		return nil
	}
	db, cancel := a.session(ctx)
	defer cancel()
	return db.AutoMigrate(AllRows()...)
}

// ==========================================
// Users
// ==========================================

// UpsertUser inserts or overwrites the user row keyed by id
func (a *Adapter) UpsertUser(ctx context.Context, u models.User) Result[models.User] {
	if !a.Configured() {
		a.skip("upsert_user")
		return resultSkipped[models.User]()
	}
	db, cancel := a.session(ctx)
	defer cancel()

	row := ToUserRow(u)
	row.UpdatedAt = a.now().UTC()
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		a.fail("upsert_user", err, zap.String("user_id", u.ID))
		return resultFailed[models.User](err)
	}
	return resultOK(FromUserRow(row))
}

func (a *Adapter) findUser(ctx context.Context, op, query string, arg interface{}) Result[models.User] {
	if !a.Configured() {
		a.skip(op)
		return resultSkipped[models.User]()
	}
	db, cancel := a.session(ctx)
	defer cancel()

	var row UserRow
	if err := db.Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resultEmpty[models.User]()
		}
		a.fail(op, err)
		return resultFailed[models.User](err)
	}
	return resultOK(FromUserRow(row))
}

// FindUser fetches one user by id
func (a *Adapter) FindUser(ctx context.Context, id string) Result[models.User] {
	return a.findUser(ctx, "find_user", "id = ?", id)
}

// FindUserByPhone fetches one user by phone number
func (a *Adapter) FindUserByPhone(ctx context.Context, phone string) Result[models.User] {
	return a.findUser(ctx, "find_user_by_phone", "phone = ?", phone)
}

func (a *Adapter) listUsers(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) Result[[]models.User] {
	if !a.Configured() {
		a.skip(op)
		return resultSkipped[[]models.User]()
	}
	db, cancel := a.session(ctx)
	defer cancel()

	var rows []UserRow
	if err := scope(db).Order("created_at DESC").Find(&rows).Error; err != nil {
		a.fail(op, err)
		return resultFailed[[]models.User](err)
	}
	if len(rows) == 0 {
		return resultEmpty[[]models.User]()
	}
	users := make([]models.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, FromUserRow(r))
	}
	return resultOK(users)
}

// ListUsers returns every user, newest first
func (a *Adapter) ListUsers(ctx context.Context) Result[[]models.User] {
	return a.listUsers(ctx, "list_users", func(db *gorm.DB) *gorm.DB { return db })
}

// ListUsersByRole returns users of one role, newest first
func (a *Adapter) ListUsersByRole(ctx context.Context, role models.Role) Result[[]models.User] {
	return a.listUsers(ctx, "list_users_by_role", func(db *gorm.DB) *gorm.DB {
		return db.Where("role = ?", string(role))
	})
}

// ==========================================
// Parcels
// ==========================================

// UpsertParcel inserts or overwrites the parcel row keyed by id
func (a *Adapter) UpsertParcel(ctx context.Context, p models.Parcel) Result[models.Parcel] {
	if !a.Configured() {
		a.skip("upsert_parcel")
		return resultSkipped[models.Parcel]()
	}
	db, cancel := a.session(ctx)
	defer cancel()

	row := ToParcelRow(p)
	row.UpdatedAt = a.now().UTC()
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		a.fail("upsert_parcel", err, zap.String("reference", p.ReferenceNumber))
		return resultFailed[models.Parcel](err)
	}
	return resultOK(FromParcelRow(row))
}

func (a *Adapter) findParcel(ctx context.Context, op, query, arg string) Result[models.Parcel] {
	if !a.Configured() {
		a.skip(op)
		return resultSkipped[models.Parcel]()
	}
	db, cancel := a.session(ctx)
	defer cancel()

	var row ParcelRow
	if err := db.Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resultEmpty[models.Parcel]()
		}
		a.fail(op, err, zap.String("key", arg))
		return resultFailed[models.Parcel](err)
	}
	return resultOK(FromParcelRow(row))
}

// FindParcelByID fetches one parcel by id
func (a *Adapter) FindParcelByID(ctx context.Context, id string) Result[models.Parcel] {
	return a.findParcel(ctx, "find_parcel", "id = ?", id)
}

// FindParcelByReference fetches one parcel by reference number
func (a *Adapter) FindParcelByReference(ctx context.Context, ref string) Result[models.Parcel] {
	return a.findParcel(ctx, "find_parcel_by_reference", "reference_number = ?", ref)
}

func (a *Adapter) listParcels(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) Result[[]models.Parcel] {
	if !a.Configured() {
		a.skip(op)
		return resultSkipped[[]models.Parcel]()
	}
	db, cancel := a.session(ctx)
	defer cancel()

	var rows []ParcelRow
	if err := scope(db).Order("created_at DESC").Find(&rows).Error; err != nil {
		a.fail(op, err)
		return resultFailed[[]models.Parcel](err)
	}
	if len(rows) == 0 {
		return resultEmpty[[]models.Parcel]()
	}
	parcels := make([]models.Parcel, 0, len(rows))
	for _, r := range rows {
		parcels = append(parcels, FromParcelRow(r))
	}
	return resultOK(parcels)
}

// ListParcels returns every parcel, newest first
func (a *Adapter) ListParcels(ctx context.Context) Result[[]models.Parcel] {
	return a.listParcels(ctx, "list_parcels", func(db *gorm.DB) *gorm.DB { return db })
}

// ListParcelsByDriver returns one driver's parcels, newest first
func (a *Adapter) ListParcelsByDriver(ctx context.Context, driverID string) Result[[]models.Parcel] {
	return a.listParcels(ctx, "list_parcels_by_driver", func(db *gorm.DB) *gorm.DB {
		return db.Where("driver_id = ?", driverID)
	})
}

// UpdateParcelStatus sets the status column, and the documents column when documents is non-nil.
// Empty means no row has that id.
func (a *Adapter) UpdateParcelStatus(ctx context.Context, id string, status models.ParcelStatus, documents *models.ParcelDocuments) Result[models.Parcel] {
	if !a.Configured() {
		a.skip("update_parcel_status")
		return resultSkipped[models.Parcel]()
	}
	db, cancel := a.session(ctx)
	defer cancel()

	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": a.now().UTC(),
	}
	if documents != nil {
		updates["documents"] = ToParcelRow(models.Parcel{Documents: documents}).Documents
	}

	tx := db.Model(&ParcelRow{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		a.fail("update_parcel_status", tx.Error, zap.String("parcel_id", id))
		return resultFailed[models.Parcel](tx.Error)
	}
	if tx.RowsAffected == 0 {
		return resultEmpty[models.Parcel]()
	}

	var row ParcelRow
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		a.fail("update_parcel_status", err, zap.String("parcel_id", id))
		return resultFailed[models.Parcel](err)
	}
	return resultOK(FromParcelRow(row))
}

// ==========================================
// QR codes and document blobs
// ==========================================

// SaveQRCode records the QR payload for a parcel
func (a *Adapter) SaveQRCode(ctx context.Context, q models.QRCodeRecord) Result[models.QRCodeRecord] {
	if !a.Configured() {
		a.skip("save_qr_code")
		return resultSkipped[models.QRCodeRecord]()
	}
	db, cancel := a.session(ctx)
	defer cancel()

	row := toQRCodeRow(q)
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		a.fail("save_qr_code", err, zap.String("reference", q.ReferenceNumber))
		return resultFailed[models.QRCodeRecord](err)
	}
	return resultOK(fromQRCodeRow(row))
}

// FindQRCode fetches the QR record for a reference number
func (a *Adapter) FindQRCode(ctx context.Context, ref string) Result[models.QRCodeRecord] {
	if !a.Configured() {
		a.skip("find_qr_code")
		return resultSkipped[models.QRCodeRecord]()
	}
	db, cancel := a.session(ctx)
	defer cancel()

	var row QRCodeRow
	if err := db.Where("reference_number = ?", ref).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resultEmpty[models.QRCodeRecord]()
		}
		a.fail("find_qr_code", err, zap.String("reference", ref))
		return resultFailed[models.QRCodeRecord](err)
	}
	return resultOK(fromQRCodeRow(row))
}

// SaveDocument stores a rendered document file
func (a *Adapter) SaveDocument(ctx context.Context, d models.DocumentBlob) Result[models.DocumentBlob] {
	if !a.Configured() {
		a.skip("save_document")
		return resultSkipped[models.DocumentBlob]()
	}
	db, cancel := a.session(ctx)
	defer cancel()

	row := toDocumentRow(d)
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		a.fail("save_document", err, zap.String("parcel_id", d.ParcelID))
		return resultFailed[models.DocumentBlob](err)
	}
	return resultOK(fromDocumentRow(row))
}

// ListDocumentsByParcel returns the stored files of a parcel, newest first
func (a *Adapter) ListDocumentsByParcel(ctx context.Context, parcelID string) Result[[]models.DocumentBlob] {
	if !a.Configured() {
		a.skip("list_documents")
		return resultSkipped[[]models.DocumentBlob]()
	}
	db, cancel := a.session(ctx)
	defer cancel()

	var rows []DocumentRow
	if err := db.Where("parcel_id = ?", parcelID).Order("created_at DESC").Find(&rows).Error; err != nil {
		a.fail("list_documents", err, zap.String("parcel_id", parcelID))
		return resultFailed[[]models.DocumentBlob](err)
	}
	if len(rows) == 0 {
		return resultEmpty[[]models.DocumentBlob]()
	}
	docs := make([]models.DocumentBlob, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, fromDocumentRow(r))
	}
	return resultOK(docs)
}

// ==========================================
// Stats
// ==========================================

// Stats counts drivers, officials, parcels, documents and QR codes
func (a *Adapter) Stats(ctx context.Context) Result[models.Stats] {
	if !a.Configured() {
		a.skip("stats")
		return resultSkipped[models.Stats]()
	}
	db, cancel := a.session(ctx)
	defer cancel()

	var s models.Stats
	counts := []struct {
		model interface{}
		where string
		arg   interface{}
		out   *int64
	}{
		{&UserRow{}, "role = ?", string(models.RoleDriver), &s.Drivers},
		{&UserRow{}, "role = ?", string(models.RoleOfficial), &s.Officials},
		{&ParcelRow{}, "", nil, &s.Parcels},
		{&DocumentRow{}, "", nil, &s.Documents},
		{&QRCodeRow{}, "", nil, &s.QRCodes},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if c.where != "" {
			q = q.Where(c.where, c.arg)
		}
		if err := q.Count(c.out).Error; err != nil {
			a.fail("stats", err)
			return resultFailed[models.Stats](err)
		}
	}
	return resultOK(s)
}
