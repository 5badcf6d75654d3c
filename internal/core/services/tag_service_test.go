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

type TagServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTagRepository
	service  portssvc.TagSvcFacade
	userID   string
}

func (suite *TagServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTagRepository)
	suite.service = services.NewTagService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

func (suite *TagServiceTestSuite) TestCreateTag_Success() {
	ctx := context.Background()
	req := dto.CreateTagRequest{Name: "viagem", Color: "#00AAFF"}

	suite.mockRepo.On("FindTagByName", ctx, suite.userID, "viagem").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveTag", ctx, mock.AnythingOfType("domain.Tag")).Return(nil).Once()

	created, err := suite.service.CreateTag(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal("viagem", created.Name)
	suite.NotEmpty(created.TagID)
}

func (suite *TagServiceTestSuite) TestCreateTag_CaseInsensitiveDuplicate() {
	ctx := context.Background()
	existing := &domain.Tag{TagID: uuid.NewString(), UserID: suite.userID, Name: "Viagem"}
	req := dto.CreateTagRequest{Name: "viagem"}

	suite.mockRepo.On("FindTagByName", ctx, suite.userID, "viagem").Return(existing, nil).Once()

	_, err := suite.service.CreateTag(ctx, suite.userID, req)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTag")
}

func (suite *TagServiceTestSuite) TestCreateTag_BlankNameRejected() {
	ctx := context.Background()

	_, err := suite.service.CreateTag(ctx, suite.userID, dto.CreateTagRequest{Name: "   "})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindTagByName")
}

func (suite *TagServiceTestSuite) TestUpdateTag_RenameCollision() {
	ctx := context.Background()
	tagID := uuid.NewString()
	tag := &domain.Tag{TagID: tagID, UserID: suite.userID, Name: "mercado"}
	other := &domain.Tag{TagID: uuid.NewString(), UserID: suite.userID, Name: "Lazer"}
	newName := "lazer"

	suite.mockRepo.On("FindTagByID", ctx, suite.userID, tagID).Return(tag, nil).Once()
	suite.mockRepo.On("FindTagByName", ctx, suite.userID, "lazer").Return(other, nil).Once()

	_, err := suite.service.UpdateTag(ctx, suite.userID, tagID, dto.UpdateTagRequest{Name: &newName})

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTag")
}

func (suite *TagServiceTestSuite) TestUpdateTag_CaseChangeOfSameTagAllowed() {
	ctx := context.Background()
	tagID := uuid.NewString()
	tag := &domain.Tag{TagID: tagID, UserID: suite.userID, Name: "mercado"}
	newName := "Mercado"

	suite.mockRepo.On("FindTagByID", ctx, suite.userID, tagID).Return(tag, nil).Once()
	suite.mockRepo.On("FindTagByName", ctx, suite.userID, "Mercado").Return(tag, nil).Once()
	suite.mockRepo.On("UpdateTag", ctx, mock.AnythingOfType("domain.Tag")).Return(nil).Once()

	updated, err := suite.service.UpdateTag(ctx, suite.userID, tagID, dto.UpdateTagRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal("Mercado", updated.Name)
}

func (suite *TagServiceTestSuite) TestDeleteTag() {
	ctx := context.Background()
	tagID := uuid.NewString()

	suite.mockRepo.On("DeleteTag", ctx, suite.userID, tagID).Return(nil).Once()

	err := suite.service.DeleteTag(ctx, suite.userID, tagID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestTagServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TagServiceTestSuite))
}
