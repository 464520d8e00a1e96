package passengers

import (
	"context"

	"github.com/vkozyr/busterminal/internal/domain"
	"github.com/vkozyr/busterminal/internal/repository"
)

type PassengerUseCase interface {
	AddOrGetPassenger(ctx context.Context, passenger *domain.Passenger) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	List(ctx context.Context) ([]domain.Passenger, error)
}

type PassengerService struct {
	repo repository.PassengerRepository
}

func NewPassengerService(repo repository.PassengerRepository) *PassengerService {
	return &PassengerService{repo: repo}
}

// AddOrGetPassenger returns the id of the passenger holding the given
// identity document, creating the row if needed. Callers are independent
// sessions with no shared memory, so the unique index on
// (document_type, document_number) arbitrates concurrent creates: when the
// insert loses that race the registry re-queries and returns the winner's
// id. Repeated and concurrent calls with the same document always resolve
// to the same single row.
func (s *PassengerService) AddOrGetPassenger(ctx context.Context, passenger *domain.Passenger) (int64, error) {
	if err := passenger.Validate(); err != nil {
		return 0, err
	}

	existing, err := s.repo.GetByDocument(ctx, passenger.DocumentType, passenger.DocumentNumber)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		passenger.ID = existing.ID
		return existing.ID, nil
	}

	inserted, err := s.repo.Insert(ctx, passenger)
	if err != nil {
		return 0, err
	}
	if inserted {
		return passenger.ID, nil
	}

	// A concurrent caller claimed the document between our lookup and
	// insert. The conflict must correspond to a real row.
	winner, err := s.repo.GetByDocument(ctx, passenger.DocumentType, passenger.DocumentNumber)
	if err != nil {
		return 0, err
	}
	if winner == nil {
		return 0, repository.IntegrityErrorf("document (%s, %s) conflicted on insert but no passenger row exists",
			passenger.DocumentType, passenger.DocumentNumber)
	}
	passenger.ID = winner.ID
	return winner.ID, nil
}

func (s *PassengerService) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PassengerService) List(ctx context.Context) ([]domain.Passenger, error) {
	return s.repo.List(ctx)
}

var _ PassengerUseCase = (*PassengerService)(nil)
