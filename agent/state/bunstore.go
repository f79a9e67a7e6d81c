package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type PostgresConfig struct {
	DSN         string        `envconfig:"DSN" split_words:"true" required:"true"`
	DialTimeout time.Duration `envconfig:"DIAL_TIMEOUT" split_words:"true" default:"10s"`
}

type itineraryRow struct {
	bun.BaseModel `bun:"table:itineraries,alias:it"`

	ID        string          `bun:"id,pk"`
	Status    string          `bun:"status,notnull"`
	Payload   json.RawMessage `bun:"payload,type:jsonb,notnull"`
	UpdatedAt time.Time       `bun:"updated_at,notnull"`
}

// BunStore persists itineraries in Postgres, one JSONB payload per trip.
type BunStore struct {
	db *bun.DB
}

func NewBunStore(cfg PostgresConfig) (*BunStore, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	connector := pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithDialTimeout(cfg.DialTimeout),
	)
	sqldb := sql.OpenDB(connector)
	db := bun.NewDB(sqldb, pgdialect.New())

	return &BunStore{db: db}, nil
}

// Init creates the itineraries table when it does not exist yet.
func (s *BunStore) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*itineraryRow)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create itineraries table: %w", err)
	}
	return nil
}

func (s *BunStore) Close() error {
	return s.db.Close()
}

func (s *BunStore) Load(ctx context.Context, tripID string) (*TripItinerary, error) {
	if strings.TrimSpace(tripID) == "" {
		return nil, ErrInvalidTripID
	}

	row := new(itineraryRow)
	err := s.db.NewSelect().
		Model(row).
		Where("it.id = ?", tripID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select itinerary: %w", err)
	}

	var it TripItinerary
	if err := json.Unmarshal(row.Payload, &it); err != nil {
		return nil, fmt.Errorf("unmarshal itinerary: %w", err)
	}
	if err := it.Validate(); err != nil {
		return nil, fmt.Errorf("invalid itinerary loaded from store: %w", err)
	}
	return &it, nil
}

func (s *BunStore) Save(ctx context.Context, it *TripItinerary) error {
	if it == nil {
		return ErrNilItinerary
	}
	if strings.TrimSpace(it.ID) == "" {
		return ErrInvalidTripID
	}
	if it.UpdatedAt.IsZero() {
		it.UpdatedAt = time.Now().UTC()
	} else {
		it.UpdatedAt = it.UpdatedAt.UTC()
	}

	payload, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("marshal itinerary: %w", err)
	}

	row := &itineraryRow{
		ID:        it.ID,
		Status:    string(it.Status),
		Payload:   payload,
		UpdatedAt: it.UpdatedAt,
	}

	_, err = s.db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("status = EXCLUDED.status").
		Set("payload = EXCLUDED.payload").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert itinerary: %w", err)
	}
	return nil
}

func (s *BunStore) Delete(ctx context.Context, tripID string) error {
	if strings.TrimSpace(tripID) == "" {
		return ErrInvalidTripID
	}
	_, err := s.db.NewDelete().
		Model((*itineraryRow)(nil)).
		Where("it.id = ?", tripID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete itinerary: %w", err)
	}
	return nil
}
