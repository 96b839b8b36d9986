package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lshigami/vocabtest/config"
	"github.com/lshigami/vocabtest/internal/dto"
)

// AnswerVerifier links a posed question to the answer submitted for it.
type AnswerVerifier interface {
	// Issue returns an opaque token to send along with the question, or "" when none is used.
	Issue(studentID, vocabularyID uint) (string, error)
	// Verify returns the id of the vocabulary item that was asked.
	Verify(studentID uint, req dto.SubmitAnswerRequest) (uint, error)
}

func NewAnswerVerifier(cfg *config.Config) AnswerVerifier {
	if cfg.Quiz.AnswerMode == config.AnswerModeToken {
		return NewTokenAnswerVerifier(cfg.Quiz.TokenSecret, cfg.Quiz.TokenTTL)
	}
	return NewEchoAnswerVerifier()
}

// echoAnswerVerifier trusts the vocab_id the client sends back.
type echoAnswerVerifier struct{}

func NewEchoAnswerVerifier() AnswerVerifier {
	return echoAnswerVerifier{}
}

func (echoAnswerVerifier) Issue(uint, uint) (string, error) { return "", nil }

func (echoAnswerVerifier) Verify(_ uint, req dto.SubmitAnswerRequest) (uint, error) {
	if req.VocabID == 0 {
		return 0, validationError("vocab_id is required")
	}
	return req.VocabID, nil
}

type questionClaims struct {
	VocabularyID uint `json:"vid"`
	jwt.RegisteredClaims
}

// tokenAnswerVerifier signs the asked vocabulary id into the question so the client
// cannot choose which id its selection is compared with.
type tokenAnswerVerifier struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenAnswerVerifier(secret string, ttl time.Duration) AnswerVerifier {
	return &tokenAnswerVerifier{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (v *tokenAnswerVerifier) Issue(studentID, vocabularyID uint) (string, error) {
	now := v.now()
	claims := questionClaims{
		VocabularyID: vocabularyID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(studentID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign question token: %w", err)
	}
	return token, nil
}

func (v *tokenAnswerVerifier) Verify(studentID uint, req dto.SubmitAnswerRequest) (uint, error) {
	if req.QuestionToken == "" {
		return 0, validationError("question_token is required")
	}
	claims := &questionClaims{}
	_, err := jwt.ParseWithClaims(req.QuestionToken, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(v.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, validationError("question token expired")
		}
		return 0, validationError("invalid question token: %v", err)
	}
	if claims.Subject != strconv.FormatUint(uint64(studentID), 10) {
		return 0, validationError("question token was issued for another student")
	}
	if req.VocabID != 0 && req.VocabID != claims.VocabularyID {
		return 0, validationError("vocab_id does not match question token")
	}
	return claims.VocabularyID, nil
}
