package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"roomify/config"
	"roomify/infras/memstore"
	"roomify/infras/otel"
	roomModel "roomify/internal/domains/room/model"
	userModel "roomify/internal/domains/user/model"
	"roomify/shared/constant"
	"roomify/shared/model"
	"roomify/shared/timezone"
	"roomify/shared/validator"

	"github.com/rs/zerolog/log"
)

//go:embed seed.json
var defaultData []byte

type Data struct {
	Rooms []Room          `json:"rooms"`
	Users []userModel.User `json:"users"`
}

type Room struct {
	ID         string   `json:"id"         validate:"required,notblank"`
	Name       string   `json:"name"       validate:"required,notblank"`
	Type       string   `json:"type"       validate:"required,oneof=classroom conference meeting lab"`
	Capacity   int      `json:"capacity"   validate:"gt=0"`
	Equipment  []string `json:"equipment"`
	Department string   `json:"department" validate:"required"`
	Floor      int      `json:"floor"`
	Building   string   `json:"building"`
	Status     string   `json:"status"     validate:"omitempty,oneof=available maintenance"`
}

// Read returns the seed document, from APP_SEED_FILE when set and from the
// embedded copy otherwise.
func Read(cfg *config.Config) (Data, error) {
	raw := defaultData

	if cfg != nil && cfg.App.SeedFile != "" {
		file, err := os.ReadFile(cfg.App.SeedFile)
		if err != nil {
			return Data{}, fmt.Errorf("failed to read seed file: %w", err)
		}

		raw = file
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("failed to decode seed data: %w", err)
	}

	return data, nil
}

// Load writes the seed rooms and users into store in one transaction.
func Load(ctx context.Context, store *memstore.Store, cfg *config.Config) error {
	data, err := Read(cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to read seed data")

		return err
	}

	now := timezone.Now()

	err = store.Update(ctx, func(tx *memstore.State) error {
		for _, r := range data.Rooms {
			if err := validator.ValidateStruct(&r); err != nil {
				return fmt.Errorf("invalid seed room %q: %w", r.ID, err)
			}

			status := r.Status
			if status == constant.Empty {
				status = roomModel.StatusAvailable
			}

			room := roomModel.Room{
				ID:         r.ID,
				Name:       r.Name,
				Type:       r.Type,
				Capacity:   r.Capacity,
				Equipment:  roomModel.NormalizeEquipment(r.Equipment),
				Department: r.Department,
				Floor:      r.Floor,
				Building:   r.Building,
				Status:     status,
				Metadata:   model.NewMetadata(constant.SystemUser, now),
			}

			if err := tx.Rooms.Insert(room); err != nil {
				return fmt.Errorf("failed to seed room: %w", err)
			}
		}

		for _, u := range data.Users {
			if err := validator.ValidateVar(u.Role, "oneof=student faculty admin hod"); err != nil {
				return fmt.Errorf("invalid seed user %q: %w", u.ID, err)
			}

			if err := tx.Users.Insert(u); err != nil {
				return fmt.Errorf("failed to seed user: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to seed store")

		return fmt.Errorf("failed to seed store: %w", err)
	}

	log.Info().Int("rooms", len(data.Rooms)).Int("users", len(data.Users)).Msg("Store seeded")

	return nil
}

// NewStore builds the entity store and seeds it. A seed that cannot be loaded
// stops the process.
func NewStore(cfg *config.Config, ot otel.Otel) *memstore.Store {
	store := memstore.New(ot)

	if err := Load(context.Background(), store, cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed store")
	}

	return store
}
