package repository

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pontu-app/rewards-service/internal/domain"
)

// MemoryStore is an in-memory implementation of every repository, guarded by
// a single mutex so balance updates stay atomic. It enforces the same
// invariants as the Postgres schema (unique email/national id/code,
// conditional debit) and backs the service tests.
type MemoryStore struct {
	mu          sync.Mutex
	nextID      int64
	users       map[int64]*domain.User
	trips       []domain.Trip
	redemptions []domain.Redemption
	favorites   map[int64]*domain.Favorite
	reports     []domain.CrowdingReport

	// FailNextWrite forces the next mutating call to fail, for exercising
	// persistence-failure paths.
	FailNextWrite error
}

// NewMemoryStore builds an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[int64]*domain.User),
		favorites: make(map[int64]*domain.Favorite),
	}
}

func (s *MemoryStore) allocID() int64 {
	s.nextID++
	return s.nextID
}

func (s *MemoryStore) takeWriteError() error {
	err := s.FailNextWrite
	s.FailNextWrite = nil
	return err
}

// Users returns the store as a UserRepository.
func (s *MemoryStore) Users() UserRepository { return (*memoryUsers)(s) }

// Trips returns the store as a TripRepository.
func (s *MemoryStore) Trips() TripRepository { return (*memoryTrips)(s) }

// Redemptions returns the store as a RedemptionRepository.
func (s *MemoryStore) Redemptions() RedemptionRepository { return (*memoryRedemptions)(s) }

// Favorites returns the store as a FavoriteRepository.
func (s *MemoryStore) Favorites() FavoriteRepository { return (*memoryFavorites)(s) }

// Feedback returns the store as a FeedbackRepository.
func (s *MemoryStore) Feedback() FeedbackRepository { return (*memoryFeedback)(s) }

type memoryUsers MemoryStore

func (m *memoryUsers) Create(_ context.Context, user *domain.User) error {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeWriteError(); err != nil {
		return err
	}
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return ErrDuplicateEmail
		}
		if existing.NationalID == user.NationalID {
			return ErrDuplicateNationalID
		}
	}
	user.ID = s.allocID()
	user.Points = 0
	user.CreatedAt = time.Now()
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (m *memoryUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memoryTrips MemoryStore

func (m *memoryTrips) CreateWithCredit(_ context.Context, trip *domain.Trip) error {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeWriteError(); err != nil {
		return err
	}
	user, ok := s.users[trip.UserID]
	if !ok {
		return pgx.ErrNoRows
	}
	trip.ID = s.allocID()
	trip.TakenAt = time.Now()
	s.trips = append(s.trips, *trip)
	user.Points += trip.PointsEarned
	return nil
}

func (m *memoryTrips) ListByUser(_ context.Context, userID int64, limit int) ([]domain.Trip, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 {
		limit = 10
	}
	var result []domain.Trip
	for i := len(s.trips) - 1; i >= 0 && len(result) < limit; i-- {
		if s.trips[i].UserID == userID {
			result = append(result, s.trips[i])
		}
	}
	return result, nil
}

type memoryRedemptions MemoryStore

func (m *memoryRedemptions) CreateWithDebit(_ context.Context, redemption *domain.Redemption) error {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeWriteError(); err != nil {
		return err
	}
	user, ok := s.users[redemption.UserID]
	if !ok || user.Points < redemption.PointsSpent {
		return ErrInsufficientPoints
	}
	for _, existing := range s.redemptions {
		if existing.Code == redemption.Code {
			return ErrDuplicateCode
		}
	}
	redemption.ID = s.allocID()
	redemption.RedeemedAt = time.Now()
	s.redemptions = append(s.redemptions, *redemption)
	user.Points -= redemption.PointsSpent
	return nil
}

func (m *memoryRedemptions) ListByUser(_ context.Context, userID int64) ([]domain.Redemption, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Redemption
	for i := len(s.redemptions) - 1; i >= 0; i-- {
		if s.redemptions[i].UserID == userID {
			result = append(result, s.redemptions[i])
		}
	}
	return result, nil
}

type memoryFavorites MemoryStore

func (m *memoryFavorites) Create(_ context.Context, favorite *domain.Favorite) error {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeWriteError(); err != nil {
		return err
	}
	favorite.ID = s.allocID()
	clone := *favorite
	s.favorites[favorite.ID] = &clone
	return nil
}

func (m *memoryFavorites) ListByUser(_ context.Context, userID int64) ([]domain.Favorite, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Favorite
	for _, favorite := range s.favorites {
		if favorite.UserID == userID {
			result = append(result, *favorite)
		}
	}
	return result, nil
}

func (m *memoryFavorites) Delete(_ context.Context, userID, favoriteID int64) error {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	favorite, ok := s.favorites[favoriteID]
	if !ok || favorite.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(s.favorites, favoriteID)
	return nil
}

type memoryFeedback MemoryStore

func (m *memoryFeedback) Create(_ context.Context, report *domain.CrowdingReport) error {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeWriteError(); err != nil {
		return err
	}
	report.ID = s.allocID()
	if report.ReportedAt.IsZero() {
		report.ReportedAt = time.Now()
	}
	s.reports = append(s.reports, *report)
	return nil
}

func (m *memoryFeedback) CountByUser(_ context.Context, userID int64) (int64, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, report := range s.reports {
		if report.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *memoryFeedback) CountByUserSince(_ context.Context, userID int64, since time.Time) (int64, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, report := range s.reports {
		if report.UserID == userID && !report.ReportedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// SeedReport inserts a crowding report with an explicit timestamp, for tests
// that need aged entries.
func (s *MemoryStore) SeedReport(userID int64, line, crowding string, reportedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, domain.CrowdingReport{
		ID:         s.allocID(),
		UserID:     userID,
		Line:       line,
		Crowding:   crowding,
		ReportedAt: reportedAt,
	})
}
