package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	authz "github.com/yigit/campusclubs/internal/app/auth"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
	"github.com/yigit/campusclubs/internal/pkg/helpers"
)

// Comment errors
var (
	ErrEmptyComment           = apperrors.NewBadRequestError("Comment content cannot be empty")
	ErrCommentNotFoundMessage = apperrors.NewCustomError(apperrors.ErrCommentNotFound, "Comment not found")
)

// CommentService handles event comment threads
type CommentService struct {
	commentRepo CommentRepository
	eventRepo   EventRepository
	userRepo    UserRepository
	logger      zerolog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo CommentRepository, eventRepo EventRepository, userRepo UserRepository, logger zerolog.Logger) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Add posts a comment on an event as the caller.
func (s *CommentService) Add(ctx context.Context, actor authz.Actor, eventID int64, content string) (*dto.CommentItem, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, eventNotFound(err)
	}

	author, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{EventID: eventID, UserID: actor.UserID, Content: content}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, eventNotFound(err)
	}
	comment.Author = author

	item := dto.NewCommentItem(comment)
	return &item, nil
}

// List returns an event's comments, newest first.
func (s *CommentService) List(ctx context.Context, eventID int64) (*dto.CommentListResponse, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, eventNotFound(err)
	}
	comments, err := s.commentRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	items := make([]dto.CommentItem, 0, len(comments))
	for i := range comments {
		items = append(items, dto.NewCommentItem(&comments[i]))
	}
	return &dto.CommentListResponse{Comments: items}, nil
}

// ByUser returns a page of a user's comments for their profile.
func (s *CommentService) ByUser(ctx context.Context, userID int64, page, limit int) (*dto.UserCommentsResponse, error) {
	comments, total, err := s.commentRepo.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing user comments: %w", err)
	}
	items := make([]dto.UserComment, 0, len(comments))
	for i := range comments {
		items = append(items, dto.NewUserComment(&comments[i]))
	}
	return &dto.UserCommentsResponse{Comments: items, Pagination: helpers.NewPaginationInfo(total, page, limit)}, nil
}

// Delete soft-deletes a comment.
func (s *CommentService) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	if err := s.commentRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrCommentNotFound) {
			return ErrCommentNotFoundMessage
		}
		return err
	}
	s.logger.Info().Int64("commentID", id).Int64("adminID", actor.UserID).Msg("Comment deleted")
	return nil
}
