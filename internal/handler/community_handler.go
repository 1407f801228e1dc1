package handler

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/popeskul/gridpulse/internal/api"
	"github.com/popeskul/gridpulse/internal/middleware"
	"github.com/popeskul/gridpulse/internal/models"
	"github.com/popeskul/gridpulse/internal/service"
)

const anonymousAuthor = "Anonymous"

// CreateResident implements api.ServerInterface.
func (h *Handler) CreateResident(w http.ResponseWriter, r *http.Request) {
	var req api.ResidentRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.sendError(w, r, http.StatusBadRequest, middleware.ErrorCodeInvalidRequest, middleware.ErrorMessageInvalidJSON)
		return
	}

	id, created, err := h.service.Community.RegisterResident(r.Context(), service.ResidentInput{
		Name:      deref(req.Name),
		WhatsApp:  deref(req.Whatsapp),
		Estate:    deref(req.Estate),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to save resident")
		return
	}

	message := "Resident updated successfully"
	if created {
		message = "Resident registered successfully"
	}

	render.JSON(w, r, api.ResidentResponse{
		Success: true,
		Message: message,
		UserId:  id,
	})
}

// ReportIssue implements api.ServerInterface.
func (h *Handler) ReportIssue(w http.ResponseWriter, r *http.Request) {
	var req api.IssueRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.sendError(w, r, http.StatusBadRequest, middleware.ErrorCodeInvalidRequest, middleware.ErrorMessageInvalidJSON)
		return
	}

	issue, err := h.service.Community.ReportIssue(r.Context(), service.IssueInput{
		ResidentID:  req.UserId,
		Type:        deref(req.Type),
		Description: deref(req.Description),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Location:    deref(req.Location),
		PhotoURL:    deref(req.PhotoUrl),
	})
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to report issue")
		return
	}

	render.JSON(w, r, api.IssueCreatedResponse{
		Success: true,
		Message: "Issue reported successfully",
		IssueId: issue.ID,
	})
}

// ListIssues implements api.ServerInterface.
func (h *Handler) ListIssues(w http.ResponseWriter, r *http.Request, params api.ListIssuesParams) {
	issues, err := h.service.Community.ListIssues(r.Context(), deref(params.Estate), intOrZero(params.Limit))
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to retrieve issues")
		return
	}

	apiIssues := make([]api.Issue, len(issues))
	for i, issue := range issues {
		apiIssues[i] = api.Issue{
			Id:          issue.ID,
			Type:        issue.Type,
			Description: issue.Description,
			Latitude:    issue.Latitude,
			Longitude:   issue.Longitude,
			Location:    nullString(issue.Location),
			PhotoUrl:    nullString(issue.PhotoURL),
			Status:      issue.Status,
			CreatedAt:   issue.CreatedAt,
			UserName:    nullString(issue.UserName),
		}
	}

	render.JSON(w, r, api.IssueListResponse{
		Success: true,
		Issues:  apiIssues,
		Count:   len(apiIssues),
	})
}

// CreateCommunityPost implements api.ServerInterface.
func (h *Handler) CreateCommunityPost(w http.ResponseWriter, r *http.Request) {
	var req api.PostRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.sendError(w, r, http.StatusBadRequest, middleware.ErrorCodeInvalidRequest, middleware.ErrorMessageInvalidJSON)
		return
	}

	id, err := h.service.Community.CreatePost(r.Context(), service.PostInput{
		ResidentID: req.UserId,
		Estate:     deref(req.Estate),
		Content:    deref(req.Content),
	})
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to create post")
		return
	}

	render.JSON(w, r, api.PostCreatedResponse{
		Success: true,
		Message: "Post created successfully",
		PostId:  id,
	})
}

// ListCommunityPosts implements api.ServerInterface.
func (h *Handler) ListCommunityPosts(w http.ResponseWriter, r *http.Request, params api.ListCommunityPostsParams) {
	posts, err := h.service.Community.ListPosts(r.Context(), deref(params.Estate), intOrZero(params.Limit))
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to retrieve posts")
		return
	}

	apiPosts := make([]api.CommunityPost, len(posts))
	for i, post := range posts {
		apiPosts[i] = toAPIPost(post)
	}

	render.JSON(w, r, api.PostListResponse{
		Success: true,
		Posts:   apiPosts,
		Count:   len(apiPosts),
	})
}

// ListBusinesses implements api.ServerInterface.
func (h *Handler) ListBusinesses(w http.ResponseWriter, r *http.Request, params api.ListBusinessesParams) {
	businesses, err := h.service.Community.ListBusinesses(r.Context(), deref(params.Estate), intOrZero(params.Limit))
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to retrieve businesses")
		return
	}

	apiBusinesses := make([]api.Business, len(businesses))
	for i, b := range businesses {
		apiBusinesses[i] = api.Business{
			Id:          b.ID,
			Name:        b.Name,
			Description: nullString(b.Description),
			Estate:      b.Estate,
			ImageUrl:    nullString(b.ImageURL),
			Contact:     nullString(b.Contact),
			CreatedAt:   b.CreatedAt,
		}
	}

	render.JSON(w, r, api.BusinessListResponse{
		Success:    true,
		Businesses: apiBusinesses,
		Count:      len(apiBusinesses),
	})
}

// ListEstates implements api.ServerInterface.
func (h *Handler) ListEstates(w http.ResponseWriter, r *http.Request) {
	estates, err := h.service.Community.ListEstates(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to retrieve estates")
		return
	}

	render.JSON(w, r, api.EstateListResponse{
		Success: true,
		Estates: estates,
		Count:   len(estates),
	})
}

func toAPIPost(post *models.CommunityPost) api.CommunityPost {
	author := anonymousAuthor
	if post.AuthorName.Valid && post.AuthorName.String != "" {
		author = post.AuthorName.String
	}

	apiPost := api.CommunityPost{
		Id:        post.ID,
		Estate:    post.Estate,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		User:      api.PostAuthor{Name: author},
	}
	if post.ResidentID.Valid {
		id := post.ResidentID.Int64
		apiPost.UserId = &id
	}

	return apiPost
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
