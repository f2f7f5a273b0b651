package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lol-overlay/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

var ErrOverlayNotFound = errors.New("overlay not found")

// OverlayRepository is the keyed TTL store for user-created overlay
// configurations. Reads never return expired rows; the scheduler deletes
// them for real.
type OverlayRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewOverlayRepository(db *sql.DB, logger zerolog.Logger) *OverlayRepository {
	return &OverlayRepository{db: db, logger: logger}
}

// Get returns the overlay with the given ID if it has not expired.
func (r *OverlayRepository) Get(ctx context.Context, id string) (*domain.Overlay, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, data, created_at, updated_at, expires_at
		 FROM overlays WHERE id = ? AND expires_at > ?`,
		id, time.Now())

	var o domain.Overlay
	if err := row.Scan(&o.ID, &o.Data, &o.CreatedAt, &o.UpdatedAt, &o.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOverlayNotFound
		}
		r.logger.Error().Err(err).Str("id", id).Msg("failed to get overlay")
		return nil, err
	}

	return &o, nil
}

// Create stores a new overlay and returns its generated ID.
func (r *OverlayRepository) Create(ctx context.Context, data string, expiry time.Duration) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate overlay id: %w", err)
	}

	now := time.Now()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO overlays (id, data, created_at, updated_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, data, now, now, now.Add(expiry))
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create overlay")
		return "", fmt.Errorf("failed to create overlay: %w", err)
	}

	r.logger.Debug().Str("id", id).Msg("created overlay")
	return id, nil
}

// Update replaces an unexpired overlay's data and pushes its expiry out.
// Returns false when the overlay does not exist or has already expired.
func (r *OverlayRepository) Update(ctx context.Context, id, data string, expiry time.Duration) (bool, error) {
	now := time.Now()
	res, err := r.db.ExecContext(ctx,
		`UPDATE overlays SET data = ?, updated_at = ?, expires_at = ?
		 WHERE id = ? AND expires_at > ?`,
		data, now, now.Add(expiry), id, now)
	if err != nil {
		r.logger.Error().Err(err).Str("id", id).Msg("failed to update overlay")
		return false, err
	}

	changed, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if changed > 0 {
		r.logger.Debug().Str("id", id).Msg("updated overlay")
	}
	return changed > 0, nil
}

// Delete removes an overlay regardless of expiry. Returns false when no row
// matched.
func (r *OverlayRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM overlays WHERE id = ?`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("id", id).Msg("failed to delete overlay")
		return false, err
	}

	changed, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if changed > 0 {
		r.logger.Debug().Str("id", id).Msg("deleted overlay")
	}
	return changed > 0, nil
}

// CleanupExpired removes every expired overlay and reports how many rows
// went away.
func (r *OverlayRepository) CleanupExpired(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM overlays WHERE expires_at < ?`, time.Now())
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to clean up expired overlays")
		return 0, err
	}

	changed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if changed > 0 {
		r.logger.Info().Int64("cleaned", changed).Msg("cleaned up expired overlays")
	}
	return int(changed), nil
}

// Stats reports how many overlays are currently active.
func (r *OverlayRepository) Stats(ctx context.Context) (int, error) {
	var active int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM overlays WHERE expires_at > ?`, time.Now()).Scan(&active)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to get overlay stats")
		return 0, err
	}
	return active, nil
}
