package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/vocabtest/internal/dto"
	"github.com/lshigami/vocabtest/internal/model"
	"github.com/lshigami/vocabtest/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type VocabularyService interface {
	CreateCategory(teacherID uint, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCategories(teacherID uint) ([]dto.CategoryResponse, error)

	CreateVocabulary(teacherID uint, req dto.CreateVocabularyRequest) (*dto.VocabularyResponse, error)
	BulkCreateVocabularies(teacherID uint, req dto.BulkCreateVocabularyRequest) ([]dto.VocabularyResponse, error)
	ListVocabularies(teacherID uint, categoryID *uint) ([]dto.VocabularyResponse, error)
	DeleteVocabulary(teacherID, vocabularyID uint) error
}

type vocabularyService struct {
	categoryRepo   repository.CategoryRepository
	vocabularyRepo repository.VocabularyRepository
	media          MediaResolver
}

func NewVocabularyService(
	categoryRepo repository.CategoryRepository,
	vocabularyRepo repository.VocabularyRepository,
	media MediaResolver,
) VocabularyService {
	return &vocabularyService{
		categoryRepo:   categoryRepo,
		vocabularyRepo: vocabularyRepo,
		media:          media,
	}
}

func (s *vocabularyService) CreateCategory(teacherID uint, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("name is required")
	}
	// Fast path only; the unique index decides when two requests race.
	exists, err := s.categoryRepo.ExistsByName(teacherID, name)
	if err != nil {
		return nil, storeError("category lookup", err)
	}
	if exists {
		return nil, fmt.Errorf("category %q: %w", name, ErrAlreadyExists)
	}

	category := model.Category{Name: name, TeacherID: teacherID}
	if err := s.categoryRepo.Create(&category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Warn().Uint("teacherID", teacherID).Str("name", name).Msg("CreateCategory: name taken by a concurrent request")
		} else {
			log.Error().Err(err).Uint("teacherID", teacherID).Msg("Failed to create category")
		}
		return nil, storeError(fmt.Sprintf("category %q", name), err)
	}
	log.Info().Uint("categoryID", category.ID).Str("name", name).Msg("Category created")

	var resp dto.CategoryResponse
	if err := copier.Copy(&resp, &category); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *vocabularyService) ListCategories(teacherID uint) ([]dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAllByTeacher(teacherID)
	if err != nil {
		return nil, storeError("categories", err)
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	if err := copier.Copy(&out, &categories); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *vocabularyService) CreateVocabulary(teacherID uint, req dto.CreateVocabularyRequest) (*dto.VocabularyResponse, error) {
	resp, err := s.BulkCreateVocabularies(teacherID, dto.BulkCreateVocabularyRequest{
		CategoryID: req.CategoryID,
		Items:      []dto.VocabularyItem{{Word: req.Word, Image: req.Image}},
	})
	if err != nil {
		return nil, err
	}
	return &resp[0], nil
}

// BulkCreateVocabularies inserts all items or none.
func (s *vocabularyService) BulkCreateVocabularies(teacherID uint, req dto.BulkCreateVocabularyRequest) ([]dto.VocabularyResponse, error) {
	if len(req.Items) == 0 {
		return nil, validationError("at least one item is required")
	}
	category, err := s.categoryRepo.FindByIDForTeacher(req.CategoryID, teacherID)
	if err != nil {
		return nil, storeError(fmt.Sprintf("category %d", req.CategoryID), err)
	}

	vocabularies := make([]model.Vocabulary, 0, len(req.Items))
	for i, item := range req.Items {
		word := strings.TrimSpace(item.Word)
		if word == "" {
			return nil, validationError("items[%d].word is required", i)
		}
		vocabularies = append(vocabularies, model.Vocabulary{
			CategoryID: category.ID,
			Word:       word,
			ImageRef:   strings.TrimSpace(item.Image),
			TeacherID:  teacherID,
		})
	}

	if len(vocabularies) == 1 {
		err = s.vocabularyRepo.Create(&vocabularies[0])
	} else {
		err = s.vocabularyRepo.CreateBatch(vocabularies)
	}
	if err != nil {
		log.Error().Err(err).Uint("categoryID", category.ID).Int("count", len(vocabularies)).Msg("Failed to create vocabularies")
		return nil, storeError("create vocabularies", err)
	}
	log.Info().Uint("categoryID", category.ID).Int("count", len(vocabularies)).Msg("Vocabularies created")

	out := make([]dto.VocabularyResponse, 0, len(vocabularies))
	for i := range vocabularies {
		vocabularies[i].Category = category
		out = append(out, s.toVocabularyResponse(&vocabularies[i]))
	}
	return out, nil
}

func (s *vocabularyService) ListVocabularies(teacherID uint, categoryID *uint) ([]dto.VocabularyResponse, error) {
	vocabularies, err := s.vocabularyRepo.FindAllByTeacher(teacherID, categoryID)
	if err != nil {
		return nil, storeError("vocabularies", err)
	}
	out := make([]dto.VocabularyResponse, 0, len(vocabularies))
	for i := range vocabularies {
		out = append(out, s.toVocabularyResponse(&vocabularies[i]))
	}
	return out, nil
}

func (s *vocabularyService) DeleteVocabulary(teacherID, vocabularyID uint) error {
	if _, err := s.vocabularyRepo.FindByIDForTeacher(vocabularyID, teacherID); err != nil {
		return storeError(fmt.Sprintf("vocabulary %d", vocabularyID), err)
	}
	if err := s.vocabularyRepo.Delete(vocabularyID); err != nil {
		log.Error().Err(err).Uint("vocabularyID", vocabularyID).Msg("Failed to delete vocabulary")
		return storeError("delete vocabulary", err)
	}
	log.Info().Uint("vocabularyID", vocabularyID).Msg("Vocabulary deleted")
	return nil
}

func (s *vocabularyService) toVocabularyResponse(v *model.Vocabulary) dto.VocabularyResponse {
	var resp dto.VocabularyResponse
	if err := copier.Copy(&resp, v); err != nil {
		log.Error().Err(err).Uint("vocabularyID", v.ID).Msg("Failed to map vocabulary")
	}
	resp.ImageURL = s.media.URL(v.ImageRef)
	if v.Category != nil {
		resp.CategoryName = v.Category.Name
	}
	return resp
}
