package handler

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wordstash/api/internal/dictionary"
	"github.com/wordstash/api/internal/scheduler"
	"github.com/wordstash/api/internal/store"
)

type AdminHandler struct {
	store     store.Store
	cleaner   *dictionary.Cleaner
	scheduler *scheduler.CleanupScheduler
	mu        sync.RWMutex
	jobs      map[string]*CleanupJob
}

type CleanupJob struct {
	JobID      string     `json:"jobId"`
	Status     string     `json:"status"` // running, completed, failed
	Removed    int        `json:"removed"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

func NewAdminHandler(st store.Store, cleaner *dictionary.Cleaner, sched *scheduler.CleanupScheduler) *AdminHandler {
	return &AdminHandler{
		store:     st,
		cleaner:   cleaner,
		scheduler: sched,
		jobs:      make(map[string]*CleanupJob),
	}
}

// StartCleanup starts a background cleanup pass
func (h *AdminHandler) StartCleanup(c *gin.Context) {
	h.mu.RLock()
	for _, job := range h.jobs {
		if job.Status == "running" {
			h.mu.RUnlock()
			c.JSON(http.StatusConflict, gin.H{
				"error": "A cleanup job is already running",
				"jobId": job.JobID,
			})
			return
		}
	}
	h.mu.RUnlock()

	jobID := uuid.New().String()
	job := &CleanupJob{
		JobID:     jobID,
		Status:    "running",
		StartedAt: time.Now(),
	}

	h.mu.Lock()
	h.jobs[jobID] = job
	h.mu.Unlock()

	go h.runCleanupJob(job)

	c.JSON(http.StatusAccepted, gin.H{
		"jobId":  jobID,
		"status": "started",
	})
}

// GetCleanupStatus returns the status of a cleanup job
func (h *AdminHandler) GetCleanupStatus(c *gin.Context) {
	jobID := c.Param("jobId")

	h.mu.RLock()
	job, exists := h.jobs[jobID]
	var snapshot CleanupJob
	if exists {
		snapshot = *job
	}
	h.mu.RUnlock()

	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// ListCleanupJobs returns all cleanup jobs
func (h *AdminHandler) ListCleanupJobs(c *gin.Context) {
	h.mu.RLock()
	jobs := make([]CleanupJob, 0, len(h.jobs))
	for _, job := range h.jobs {
		jobs = append(jobs, *job)
	}
	h.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *AdminHandler) runCleanupJob(job *CleanupJob) {
	log.Printf("[CleanupJob %s] Started", job.JobID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	removed, err := h.cleaner.Run(ctx)
	now := time.Now()

	h.mu.Lock()
	job.Removed = removed
	job.FinishedAt = &now
	if err != nil {
		job.Status = "failed"
		job.Error = err.Error()
	} else {
		job.Status = "completed"
	}
	h.mu.Unlock()

	log.Printf("[CleanupJob %s] Finished - removed: %d, err: %v", job.JobID, removed, err)
}

// ClearCache drops every record in the store, settings included
func (h *AdminHandler) ClearCache(c *gin.Context) {
	if err := h.store.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cache"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cache cleared"})
}

// SchedulerStatus reports the cleanup scheduler state
func (h *AdminHandler) SchedulerStatus(c *gin.Context) {
	if h.scheduler == nil {
		c.JSON(http.StatusOK, gin.H{"running": false})
		return
	}

	c.JSON(http.StatusOK, h.scheduler.GetStatus())
}
