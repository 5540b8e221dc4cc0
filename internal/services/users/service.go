// Package users handles driver and official accounts: sign-up, profile
// updates and lookups. Records live in the Local Store and are mirrored to
// the remote backend on a best-effort basis.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/xelth-com/goodstrack/internal/models"
	"github.com/xelth-com/goodstrack/internal/remote"
	"github.com/xelth-com/goodstrack/internal/store"
	"github.com/xelth-com/goodstrack/internal/utils"
	"go.uber.org/zap"
)

// Local is the part of the Local Store used for accounts
type Local interface {
	Users(ctx context.Context) []models.User
	SaveUsers(ctx context.Context, users []models.User)
	UpsertUser(ctx context.Context, u models.User) bool
	FindUserBy(ctx context.Context, field, value string) (models.User, bool)
	SaveDriverProfile(ctx context.Context, driverID string, profile models.CarrierProfile)
}

// Remote is the part of the Remote Store Adapter used for accounts
type Remote interface {
	Configured() bool
	UpsertUser(ctx context.Context, u models.User) remote.Result[models.User]
	FindUser(ctx context.Context, id string) remote.Result[models.User]
	FindUserByPhone(ctx context.Context, phone string) remote.Result[models.User]
	ListUsers(ctx context.Context) remote.Result[[]models.User]
	ListUsersByRole(ctx context.Context, role models.Role) remote.Result[[]models.User]
}

// SignUpRequest is the registration form
type SignUpRequest struct {
	Phone              string      `json:"phone" validate:"required,min=7"`
	DisplayName        string      `json:"fullName" validate:"required"`
	Role               models.Role `json:"role" validate:"required,oneof=driver official"`
	CompanyName        string      `json:"companyName"`
	VehicleNumber      string      `json:"vehicleNumber"`
	VINNumber          string      `json:"vinNumber"`
	VehicleDescription string      `json:"vehicleDescription"`
	InsuranceNumber    string      `json:"vehicleInsuranceNumber"`
	NationalID         string      `json:"driverNIN"`
	DriverPhoto        string      `json:"driverPhoto"`
	LicensePhoto       string      `json:"licensePhoto"`
}

// Service manages user accounts
type Service struct {
	local    Local
	remote   Remote
	logger   *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewService creates the users service. A nil remote behaves as not configured.
func NewService(local Local, rem Remote, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rem == nil {
		rem = remote.New(nil, logger)
	}
	return &Service{
		local:    local,
		remote:   rem,
		logger:   logger.Named("users"),
		validate: validator.New(),
		now:      time.Now,
	}
}

// Register creates an account. Phone numbers are unique.
func (s *Service) Register(ctx context.Context, req SignUpRequest) (*models.User, error) {
	req.Phone = strings.TrimSpace(req.Phone)
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if err := s.validate.Struct(req); err != nil {
		return nil, invalidInput(err)
	}
	if _, taken := s.local.FindUserBy(ctx, store.FieldPhone, req.Phone); taken {
		return nil, fmt.Errorf("%w: an account with phone %s already exists", models.ErrInvalidInput, req.Phone)
	}

	now := s.now().UTC()
	u := models.User{
		ID:                 utils.NewRecordID(),
		Phone:              req.Phone,
		DisplayName:        req.DisplayName,
		Role:               req.Role,
		CompanyName:        req.CompanyName,
		VehicleNumber:      req.VehicleNumber,
		VINNumber:          req.VINNumber,
		VehicleDescription: req.VehicleDescription,
		InsuranceNumber:    req.InsuranceNumber,
		NationalID:         req.NationalID,
		DriverPhoto:        req.DriverPhoto,
		LicensePhoto:       req.LicensePhoto,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	s.persist(ctx, u)

	s.logger.Info("👤 User registered", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return &u, nil
}

// SyncProfile updates an existing account. The role cannot change and the
// phone number must stay unique.
func (s *Service) SyncProfile(ctx context.Context, u models.User) (*models.User, error) {
	existing, ok := s.local.FindUserBy(ctx, store.FieldID, u.ID)
	if !ok {
		return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, u.ID)
	}
	if u.Role != "" && u.Role != existing.Role {
		return nil, fmt.Errorf("%w: role cannot change from %s to %s", models.ErrInvalidInput, existing.Role, u.Role)
	}
	u.Role = existing.Role
	u.Phone = strings.TrimSpace(u.Phone)
	if u.Phone == "" {
		u.Phone = existing.Phone
	}
	if u.Phone != existing.Phone {
		if other, taken := s.local.FindUserBy(ctx, store.FieldPhone, u.Phone); taken && other.ID != u.ID {
			return nil, fmt.Errorf("%w: phone %s belongs to another account", models.ErrInvalidInput, u.Phone)
		}
	}
	if strings.TrimSpace(u.DisplayName) == "" {
		u.DisplayName = existing.DisplayName
	}
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = s.now().UTC()

	s.persist(ctx, u)
	s.logger.Info("👤 User profile synced", zap.String("user_id", u.ID))
	return &u, nil
}

func (s *Service) persist(ctx context.Context, u models.User) {
	if !s.local.UpsertUser(ctx, u) {
		s.logger.Error("❌ User not persisted locally", zap.String("user_id", u.ID))
	}
	if u.Role == models.RoleDriver {
		s.local.SaveDriverProfile(ctx, u.ID, u.CarrierProfile())
	}
	if s.remote.Configured() {
		if res := s.remote.UpsertUser(ctx, u); !res.OK() {
			s.logger.Warn("⚠️ Remote user upsert deferred to next push",
				zap.String("user_id", u.ID), zap.Stringer("outcome", res.Outcome))
		}
	}
}

// Get returns a user by id, remote first
func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	return s.find(ctx, store.FieldID, id, s.remote.FindUser)
}

// GetByPhone returns a user by phone number, remote first
func (s *Service) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	return s.find(ctx, store.FieldPhone, strings.TrimSpace(phone), s.remote.FindUserByPhone)
}

func (s *Service) find(ctx context.Context, field, value string, fetch func(context.Context, string) remote.Result[models.User]) (*models.User, error) {
	if value == "" {
		return nil, fmt.Errorf("%w: %s is required", models.ErrInvalidInput, field)
	}
	if s.remote.Configured() {
		if res := fetch(ctx, value); res.OK() {
			u := res.Value
			s.local.UpsertUser(ctx, u)
			return &u, nil
		}
	}
	u, ok := s.local.FindUserBy(ctx, field, value)
	if !ok {
		return nil, fmt.Errorf("%w: user %s=%s", models.ErrNotFound, field, value)
	}
	return &u, nil
}

// List returns all users, or only those with the given role.
// A full remote listing replaces the local user collection.
func (s *Service) List(ctx context.Context, role models.Role) ([]models.User, error) {
	if role != "" && !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", models.ErrInvalidInput, role)
	}

	if s.remote.Configured() {
		if role == "" {
			if res := s.remote.ListUsers(ctx); res.OK() {
				s.local.SaveUsers(ctx, res.Value)
				return res.Value, nil
			}
		} else if res := s.remote.ListUsersByRole(ctx, role); res.OK() {
			return res.Value, nil
		}
	}

	all := s.local.Users(ctx)
	out := make([]models.User, 0, len(all))
	for _, u := range all {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func invalidInput(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field()+" "+fe.Tag())
		}
		return fmt.Errorf("%w: %s", models.ErrInvalidInput, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
}
