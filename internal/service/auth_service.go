package service

import (
	"codeverse_backend/internal/config"
	"codeverse_backend/internal/model"
	"codeverse_backend/internal/util"
	"context"
)

type AuthService struct {
	Participants *ParticipantService
	Cfg          *config.Config
}

func NewAuthService(participants *ParticipantService, cfg *config.Config) *AuthService {
	return &AuthService{
		Participants: participants,
		Cfg:          cfg,
	}
}

// Login registers the participant on first sight and issues an identity token.
func (s *AuthService) Login(ctx context.Context, name, email, rollNo string) (string, *model.Participant, error) {
	p, err := s.Participants.CreateParticipant(ctx, email, name, rollNo)
	if err != nil {
		return "", nil, err
	}

	token, err := util.GenerateJWT(p.Email, p.Name, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, p, nil
}
