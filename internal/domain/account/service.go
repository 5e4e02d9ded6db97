package account

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"mentorship/internal/pkg/apperr"
	"mentorship/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo *Repository
	jwt  *jwt.Service
}

func NewService(repo *Repository, jwtService *jwt.Service) *Service {
	return &Service{repo: repo, jwt: jwtService}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if req.Kind != KindLearner && req.Kind != KindMentor {
		return nil, ErrInvalidKind
	}

	tz, err := normalizeTimeZone(req.TimeZone)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	a := &Account{
		Kind:         req.Kind,
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		TimeZone:     tz,
		IsActive:     true,
	}
	if req.Kind == KindMentor {
		if req.HourlyRate < 0 {
			return nil, ErrInvalidProfile
		}
		a.Mentor = &MentorProfile{
			Headline:   strings.TrimSpace(req.Headline),
			Bio:        req.Bio,
			Skills:     cleanSkills(req.Skills),
			HourlyRate: req.HourlyRate,
		}
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	log.Printf("account_registered id=%d kind=%s", a.ID, a.Kind)

	return s.issue(a)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	a, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !a.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.issue(a)
}

func (s *Service) Me(ctx context.Context, id int64) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

// GetMentor is the public mentor view. Inactive mentors are hidden.
func (s *Service) GetMentor(ctx context.Context, id int64) (*Account, error) {
	a, err := s.repo.GetMentor(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsActive {
		return nil, ErrMentorNotFound
	}
	return a, nil
}

// ActiveSessions returns the ids of the mentor's pending and confirmed sessions.
func (s *Service) ActiveSessions(ctx context.Context, mentorID int64) ([]int64, error) {
	if _, err := s.repo.GetMentor(ctx, mentorID); err != nil {
		return nil, err
	}
	ids, err := s.repo.ListActiveSessions(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func (s *Service) ListMentors(ctx context.Context, skills []string, page, limit int) ([]Account, int64, error) {
	return s.repo.ListMentors(ctx, MentorFilter{
		Skills:       cleanSkills(skills),
		VerifiedOnly: true,
		Limit:        limit,
		Offset:       (page - 1) * limit,
	})
}

func (s *Service) UpdateMentorProfile(ctx context.Context, mentorID int64, req UpdateMentorProfileRequest) (*Account, error) {
	a, err := s.repo.GetMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	p := a.Mentor
	if req.Headline != nil {
		p.Headline = strings.TrimSpace(*req.Headline)
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.Skills != nil {
		p.Skills = cleanSkills(req.Skills)
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return nil, ErrInvalidProfile
		}
		p.HourlyRate = *req.HourlyRate
	}

	if err := s.repo.UpdateMentorProfile(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.GetMentor(ctx, mentorID)
}

func (s *Service) SetMentorVerified(ctx context.Context, mentorID int64, verified bool) (*Account, error) {
	if err := s.repo.SetVerified(ctx, mentorID, verified); err != nil {
		return nil, err
	}
	log.Printf("mentor_verification_changed mentor_id=%d verified=%t", mentorID, verified)
	return s.repo.GetMentor(ctx, mentorID)
}

func (s *Service) SetActive(ctx context.Context, id int64, active bool) (*Account, error) {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	log.Printf("account_active_changed id=%d active=%t", id, active)
	return s.repo.GetByID(ctx, id)
}

func (s *Service) issue(a *Account) (*AuthResponse, error) {
	token, err := s.jwt.GenerateToken(a.ID, string(a.Kind))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwt.TTL() / time.Second),
		Account:     a,
	}, nil
}

func normalizeTimeZone(tz string) (string, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return "UTC", nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return "", apperr.Wrap(ErrInvalidTimeZone, err)
	}
	return tz, nil
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := normalizeSkill(s)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
