package services_test

import (
	"context"
	"testing"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/core/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCategoryRepository
	service  portssvc.CategorySvcFacade
	userID   string
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCategoryRepository)
	suite.service = services.NewCategoryService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_TopLevel() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{Name: "Moradia", Type: domain.CategoryExpense, Color: "#FF8800"}

	suite.mockRepo.On("SaveCategory", ctx, mock.AnythingOfType("domain.Category")).Return(nil).Once()

	created, err := suite.service.CreateCategory(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.CategoryExpense, created.Type)
	suite.Empty(created.ParentID)
	suite.True(created.IsActive)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_TopLevelRequiresType() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{Name: "Sem Tipo"}

	_, err := suite.service.CreateCategory(ctx, suite.userID, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCategory")
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_ChildInheritsParentType() {
	ctx := context.Background()
	parentID := uuid.NewString()
	parent := &domain.Category{
		CategoryID: parentID,
		UserID:     suite.userID,
		Name:       "Moradia",
		Type:       domain.CategoryExpense,
		IsActive:   true,
	}
	// Even if the request claims INCOME, the child follows the parent.
	req := dto.CreateCategoryRequest{Name: "Aluguel", Type: domain.CategoryIncome, ParentID: parentID}

	suite.mockRepo.On("FindCategoryByID", ctx, suite.userID, parentID).Return(parent, nil).Once()
	suite.mockRepo.On("SaveCategory", ctx, mock.AnythingOfType("domain.Category")).Return(nil).Once()

	created, err := suite.service.CreateCategory(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.CategoryExpense, created.Type)
	suite.Equal(parentID, created.ParentID)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_GrandchildRejected() {
	ctx := context.Background()
	childID := uuid.NewString()
	child := &domain.Category{
		CategoryID: childID,
		UserID:     suite.userID,
		Name:       "Aluguel",
		Type:       domain.CategoryExpense,
		ParentID:   uuid.NewString(),
		IsActive:   true,
	}
	req := dto.CreateCategoryRequest{Name: "Condomínio", ParentID: childID}

	suite.mockRepo.On("FindCategoryByID", ctx, suite.userID, childID).Return(child, nil).Once()

	_, err := suite.service.CreateCategory(ctx, suite.userID, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCategory")
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_ParentNotOwned() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateCategoryRequest{Name: "Orfã", ParentID: parentID}

	suite.mockRepo.On("FindCategoryByID", ctx, suite.userID, parentID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateCategory(ctx, suite.userID, req)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CategoryServiceTestSuite) TestDeactivateCategory_Cascades() {
	ctx := context.Background()
	categoryID := uuid.NewString()

	suite.mockRepo.On("DeactivateCategoryWithChildren", ctx, suite.userID, categoryID, suite.userID,
		mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateCategory(ctx, suite.userID, categoryID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestActivateCategory_NoCascade() {
	ctx := context.Background()
	categoryID := uuid.NewString()

	suite.mockRepo.On("ActivateCategory", ctx, suite.userID, categoryID, suite.userID,
		mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.ActivateCategory(ctx, suite.userID, categoryID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateCategoryWithChildren")
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
