package ai

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"carrental/models"
	"carrental/services/storage"
	"carrental/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	ErrNotConfigured = utils.NewAppError(utils.CodeUnavailable, "AI features are not configured")
	ErrNoMedia       = utils.NewAppError(utils.CodeUnavailable, "image generation returned no media")
	ErrInvalidOutput = utils.NewAppError(utils.CodeUnavailable, "AI returned an invalid response")
)

// Media is an inline image returned by the model.
type Media struct {
	MIMEType string
	Data     []byte
}

// DataURI encodes the media as a data: URI.
func (m *Media) DataURI() string {
	mime := m.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(m.Data)
}

// Generator is the model backend.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (*Media, error)
}

// Cache stores JSON values by key.
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, v interface{}, ttl time.Duration) error
}

// AIService exposes the recommendation and image flows.
type AIService interface {
	Recommend(ctx context.Context, input models.RecommendationInput) (*models.RecommendationOutput, error)
	GenerateCarImage(ctx context.Context, input models.CarImageInput) (*models.CarImageOutput, error)
}

// DefaultAIService implements AIService on Gemini.
type DefaultAIService struct {
	gen      Generator
	cache    Cache
	storage  storage.StorageService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewDefaultAIService wires the AI flows. gen may be nil when no API key is set; cache and store are optional.
func NewDefaultAIService(gen Generator, cache Cache, store storage.StorageService, logger *zap.Logger) *DefaultAIService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAIService{
		gen:      gen,
		cache:    cache,
		storage:  store,
		validate: validator.New(),
		logger:   logger,
	}
}

const recommendationPrompt = `You are an AI assistant specialized in providing smart car rental recommendations for users in Rwanda.

Based on the user's specified preferences, provide a list of car rental options that best match their needs.
Consider the price range (in RWF), car type, desired features, and rental location within Rwanda.
Explain the reasoning behind each recommendation and assign a suitability score.

Preferences:
- Price Range: %s RWF
- Car Type: %s
- Features: %s
- Purpose: %s
- Location: %s

Respond with JSON only, shaped as:
{"recommendations":[{"carName":string,"rentalCompany":string,"price":number,"suitabilityScore":number,"reasoning":string}]}
price is the daily price in RWF. suitabilityScore must be between 0 and 1.`

const carImagePrompt = `Generate a photorealistic image of a car. The car is a %s, which is a %s.
The description is: "%s".
The image should be high-resolution, suitable for a website, with a clean background.
The car should be the main focus of the image.`

// Recommend asks the model for rentals matching the input and validates the reply.
func (s *DefaultAIService) Recommend(ctx context.Context, input models.RecommendationInput) (*models.RecommendationOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, utils.NewAppError(utils.CodeInvalidInput, err.Error())
	}
	if s.gen == nil {
		return nil, ErrNotConfigured
	}

	key := utils.RecommendationCachePrefix + hashKey(input)
	var cached models.RecommendationOutput
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	prompt := fmt.Sprintf(recommendationPrompt, input.PriceRange, input.CarType, input.Features, input.Purpose, input.Location)
	text, err := s.gen.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	out, err := s.parseRecommendations(text)
	if err != nil {
		s.logger.Warn("Rejected recommendation output", zap.Error(err))
		return nil, err
	}

	s.cacheSet(ctx, key, out, utils.RecommendationCacheTTL)
	return out, nil
}

func (s *DefaultAIService) parseRecommendations(text string) (*models.RecommendationOutput, error) {
	var out models.RecommendationOutput
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if err := s.validate.Struct(out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return &out, nil
}

// GenerateCarImage renders a car and returns a hosted URL for it.
// Without an asset store the data URI itself is returned.
func (s *DefaultAIService) GenerateCarImage(ctx context.Context, input models.CarImageInput) (*models.CarImageOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, utils.NewAppError(utils.CodeInvalidInput, err.Error())
	}
	if s.gen == nil {
		return nil, ErrNotConfigured
	}

	key := utils.CarImageCachePrefix + hashKey(input)
	var cached models.CarImageOutput
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	prompt := fmt.Sprintf(carImagePrompt, input.CarName, input.CarType, input.CarDescription)
	media, err := s.gen.GenerateImage(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if media == nil {
		return nil, ErrNoMedia
	}

	out := &models.CarImageOutput{ImageURL: media.DataURI()}
	if s.storage != nil {
		res, err := s.storage.UploadFile(ctx, out.ImageURL, storage.GeneratedCarFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to store generated image: %w", err)
		}
		out.ImageURL = res.SecureURL
		s.cacheSet(ctx, key, out, utils.CarImageCacheTTL)
	}
	return out, nil
}

func (s *DefaultAIService) cacheGet(ctx context.Context, key string, dst interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		s.logger.Warn("AI cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *DefaultAIService) cacheSet(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, v, ttl); err != nil {
		s.logger.Warn("AI cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func hashKey(v interface{}) string {
	b, _ := json.Marshal(v)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// stripCodeFence removes a ```json fence some models wrap around JSON replies.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
