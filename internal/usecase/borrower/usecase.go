package borrower

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vnv-money-backend/internal/domain/audit"
	"vnv-money-backend/internal/domain/borrower"
	"vnv-money-backend/internal/domain/tier"
	"vnv-money-backend/internal/domain/uow"
	"vnv-money-backend/pkg/id"

	"gorm.io/gorm"
)

var ErrInvalidInput = errors.New("invalid input")

type RegisterInput struct {
	FullName        string `json:"full_name"`
	ZaloNumber      string `json:"zalo_number"`
	CCCD            string `json:"cccd"`
	Address         string `json:"address"`
	RefZaloNumber   string `json:"ref_zalo_number"`
	RefRelationship string `json:"ref_relationship"`
	IP              string `json:"-"`
	DeviceID        string `json:"-"`
}

type BorrowerDTO struct {
	BorrowerID         string    `json:"borrower_id"`
	FullName           string    `json:"full_name"`
	ZaloNumber         string    `json:"zalo_number"`
	Role               string    `json:"role"`
	Tier               string    `json:"tier"`
	Limit              int64     `json:"limit"`
	Verified           bool      `json:"verified"`
	SettlementProgress int       `json:"settlement_progress"`
	JoinedAt           time.Time `json:"joined_at"`
}

type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

// Register creates an unverified account at the lowest tier with that tier's
// ceiling as the starting limit.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*BorrowerDTO, error) {
	if in.FullName == "" || in.ZaloNumber == "" {
		return nil, ErrInvalidInput
	}

	var dto *BorrowerDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		_, err := r.Borrowers.GetByZaloNumber(ctx, in.ZaloNumber)
		switch {
		case err == nil:
			return borrower.ErrZaloTaken
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		lowest := tier.Lowest()
		b := &borrower.Borrower{
			BorrowerID:      id.NewID32(),
			FullName:        in.FullName,
			ZaloNumber:      in.ZaloNumber,
			CCCD:            in.CCCD,
			Address:         in.Address,
			Role:            borrower.RoleBorrower,
			Tier:            lowest.Name,
			Limit:           lowest.MaxLimit,
			RefZaloNumber:   in.RefZaloNumber,
			RefRelationship: in.RefRelationship,
			JoinedAt:        time.Now().UTC(),
		}
		if err := r.Borrowers.Create(ctx, b); err != nil {
			return err
		}

		if err := r.AuditLogs.Append(ctx, &audit.Entry{
			LogID:         id.NewID32(),
			PerformerID:   b.BorrowerID,
			PerformerName: b.FullName,
			Action:        fmt.Sprintf("Registered account %s", b.ZaloNumber),
			IP:            in.IP,
			DeviceID:      in.DeviceID,
		}); err != nil {
			return err
		}

		dto = toDTO(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, borrowerID string) (*BorrowerDTO, error) {
	var dto *BorrowerDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		b, err := r.Borrowers.GetByBorrowerID(ctx, borrowerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return borrower.ErrNotFound
			}
			return err
		}
		dto = toDTO(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func toDTO(b *borrower.Borrower) *BorrowerDTO {
	return &BorrowerDTO{
		BorrowerID:         b.BorrowerID,
		FullName:           b.FullName,
		ZaloNumber:         b.ZaloNumber,
		Role:               string(b.Role),
		Tier:               string(b.Tier),
		Limit:              b.Limit,
		Verified:           b.Verified,
		SettlementProgress: b.SettlementProgress,
		JoinedAt:           b.JoinedAt,
	}
}
