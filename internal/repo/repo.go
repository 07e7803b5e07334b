package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/dbpg"

	"weddingdesk/internal/model"
)

var (
	ErrGuestNotFound        = errors.New("guest not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrContributionNotFound = errors.New("contribution not found")
	ErrAlreadySeated        = errors.New("attendee already has a seat")
)

type Repository interface {
	CreateGuest(ctx context.Context, g *model.Guest) (int64, error)
	GetGuestByID(ctx context.Context, id int64) (*model.Guest, error)
	ListGuests(ctx context.Context) ([]model.Guest, error)
	UpdateGuest(ctx context.Context, g *model.Guest) error
	UpdateAttendanceTx(ctx context.Context, guestID int64, personIndex int, status string) error
	DeleteGuestTx(ctx context.Context, guestID int64) error

	ListTableConfigs(ctx context.Context) ([]model.TableConfig, error)
	UpdateTableCapacityTx(ctx context.Context, tableNumber, capacity int) error
	ReorderTablesTx(ctx context.Context, dragged, target int, before bool) error

	ListAssignments(ctx context.Context) ([]model.SeatAssignment, error)
	GetAssignmentByID(ctx context.Context, id int64) (*model.SeatAssignment, error)
	AllocateSeatsTx(ctx context.Context, guestID int64, personIndexes []int, tableNumber, targetSeat int) ([]model.SeatAssignment, error)
	MoveAssignmentTx(ctx context.Context, assignmentID int64, tableNumber, targetSeat int) error
	SwapAssignmentsTx(ctx context.Context, firstID, secondID int64) error
	DeleteAssignmentTx(ctx context.Context, assignmentID int64) error

	CreateProduct(ctx context.Context, p *model.Product) (int64, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateContribution(ctx context.Context, c *model.Contribution) (int64, error)
	GetContributionByReference(ctx context.Context, reference string) (*model.Contribution, error)
	GetContributionByID(ctx context.Context, id int64) (*model.Contribution, error)
	UpdateContributionStatusTx(ctx context.Context, contributionID int64, newStatus string) error
	ExpireIfPendingTx(ctx context.Context, contributionID int64) (bool, error)

	MigrateUp(migrationsDir string) error
	MigrateDown(migrationsDir string) error
}

type repository struct {
	db  *dbpg.DB
	log *zerolog.Logger
}

func NewRepository(db *dbpg.DB, log *zerolog.Logger) (Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if err := db.Master.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return &repository{db: db, log: log}, nil
}

func (r *repository) MigrateUp(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations applied successfully from %s", migrationsDir)
	return nil
}

func (r *repository) MigrateDown(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.down.sql"))
	if err != nil {
		return fmt.Errorf("failed to read rollback files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read rollback file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to rollback migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations rolled back successfully from %s", migrationsDir)
	return nil
}
