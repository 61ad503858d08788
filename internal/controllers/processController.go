package controllers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/maildeck/mailsift/internal/content"
	"github.com/maildeck/mailsift/internal/middleware"
	"github.com/maildeck/mailsift/internal/repository"
	"github.com/maildeck/mailsift/internal/service"
	"github.com/maildeck/mailsift/internal/thread"
)

type MessagesListResponse struct {
	Limit  int                        `json:"limit"`
	Offset int                        `json:"offset"`
	Count  int                        `json:"count"`
	Items  []repository.MessageEntity `json:"items"`
}

type ProcessController struct {
	pipeline      *service.Pipeline
	reconstructor *thread.Reconstructor
	repo          repository.MessageRepository
	log           *logrus.Entry
}

func NewProcessController(p *service.Pipeline, rec *thread.Reconstructor, r repository.MessageRepository, log *logrus.Entry) *ProcessController {
	return &ProcessController{
		pipeline:      p,
		reconstructor: rec,
		repo:          r,
		log:           log,
	}
}

func (pc *ProcessController) reqLogger(c *gin.Context) *logrus.Entry {
	traceID := c.GetHeader(middleware.HeaderTraceID)
	if traceID == "" {
		traceID = c.GetHeader(middleware.HeaderRequestID)
	}
	return pc.log.WithFields(logrus.Fields{
		"handler":    "ProcessController",
		"trace_id":   traceID,
		"remote_ip":  c.ClientIP(),
		"path":       c.Request.URL.Path,
		"request_id": traceID,
	})
}

// ProcessInput carries one HTML body plus optional duplicate-detection
// context.
type ProcessInput struct {
	Body         string `json:"body" binding:"required"`
	PreviousBody string `json:"previous_body"`
}

type ProcessOutput struct {
	Content content.ProcessedContent `json:"content"`
	Snippet string                   `json:"snippet"`
}

// Process runs the content pipeline on one body without persisting anything.
//
// @Summary      Segment and sanitize one HTML body
// @Description  Splits the body into clean content, quoted history, signatures and security banners; optionally flags duplicate content against previous_body.
// @Tags         processing
// @Accept       json
// @Produce      json
// @Param        body  body  ProcessInput  true  "HTML body with optional previous body"
// @Success      200  {object}  ProcessOutput
// @Failure      400  {object}  map[string]string
// @Router       /process [post]
func (pc *ProcessController) Process(c *gin.Context) {
	log := pc.reqLogger(c).WithField("handler", "Process")

	var in ProcessInput
	if err := c.ShouldBindJSON(&in); err != nil {
		log.WithError(err).Warn("bad process body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out := pc.pipeline.ProcessBody(in.Body, in.PreviousBody)
	c.JSON(http.StatusOK, ProcessOutput{
		Content: out,
		Snippet: content.Snippet(out.CleanBody),
	})
}

// ProcessRaw ingests a raw RFC822 message and persists the processed result.
//
// @Summary      Process and store a raw message
// @Description  Accepts raw EML (text/plain or message/rfc822), extracts the HTML body, runs the pipeline against the thread's latest stored message and persists the result
// @Tags         processing
// @Accept       plain
// @Accept       message/rfc822
// @Produce      json
// @Success      201  {object}  repository.MessageEntity
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /process/raw [post]
func (pc *ProcessController) ProcessRaw(c *gin.Context) {
	log := pc.reqLogger(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 10<<20) // 10 MB limit
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.WithError(err).Warn("bad request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(raw) == 0 {
		log.Warn("empty request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ent, err := pc.pipeline.IngestRaw(ctx, raw)
	if err != nil {
		log.WithError(err).Error("failed to process and save message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
		return
	}

	c.JSON(http.StatusCreated, ent)
}

// BatchMessageInput
type BatchMessageInput struct {
	Raw string `json:"raw" example:"From: Alice <alice@example.com>\r\nTo: Bob <bob@example.com>\r\nMessage-ID: <msg-1@example.com>\r\nDate: Wed, 30 Oct 2025 18:00:00 +0000\r\nSubject: Test\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n<div>Hello!</div>"`
}

// BatchItemResult
type BatchItemResult struct {
	Index      int    `json:"index"`
	Status     string `json:"status"` // ok|error
	MessageID  string `json:"message_id,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"` // ms
}

// BatchResponse
type BatchResponse struct {
	Processed int               `json:"processed"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Results   []BatchItemResult `json:"results"`
}

// BatchProcessRaw ingests several raw messages concurrently.
//
// @Summary      Batch process raw messages
// @Description  Processes a list of raw RFC822 messages with a bounded worker pool
// @Tags         processing
// @Accept       json
// @Produce      json
// @Param        max_workers   query   int     false  "Maximum concurrent workers (1..100)" minimum(1) maximum(100) default(5)
// @Param        item_timeout  query   string  false  "Per-item timeout (e.g. 500ms, 2s)" default(500ms)
// @Param        body          body    []BatchMessageInput  true  "List of raw messages (RFC822 in the raw field)"
// @Success      200  {object}  BatchResponse
// @Failure      400  {object}  map[string]string
// @Router       /process/batch [post]
func (pc *ProcessController) BatchProcessRaw(c *gin.Context) {
	log := pc.reqLogger(c).WithField("handler", "BatchProcessRaw")

	var inputs []BatchMessageInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		log.WithError(err).Warn("bad batch body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(inputs) == 0 {
		log.Warn("empty input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty input"})
		return
	}

	maxWorkers := 5
	if s := c.Query("max_workers"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 && v <= 100 {
			maxWorkers = v
		}
	}
	itemTimeout := 500 * time.Millisecond
	if s := c.Query("item_timeout"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			itemTimeout = d
		}
	}

	log = log.WithFields(logrus.Fields{
		"items":        len(inputs),
		"max_workers":  maxWorkers,
		"item_timeout": itemTimeout.String(),
	})
	log.Info("batch started")

	type job struct {
		i   int
		raw string
	}
	jobs := make(chan job, len(inputs))
	results := make(chan BatchItemResult, len(inputs))

	ctx := c.Request.Context()

	worker := func(id int) {
		for j := range jobs {
			start := time.Now()
			ictx, cancel := context.WithTimeout(ctx, itemTimeout)
			ent, err := pc.pipeline.IngestRaw(ictx, []byte(j.raw))
			cancel()

			dur := time.Since(start).Milliseconds()
			if err != nil {
				log.WithFields(logrus.Fields{"idx": j.i, "dur": dur, "err": err.Error()}).Warn("item processing failed")
				results <- BatchItemResult{Index: j.i, Status: "error", Error: err.Error(), DurationMS: dur}
				continue
			}
			results <- BatchItemResult{Index: j.i, Status: "ok", MessageID: ent.ID, DurationMS: dur}
		}
	}

	wc := maxWorkers
	if wc > len(inputs) {
		wc = len(inputs)
	}
	var wg sync.WaitGroup
	wg.Add(wc)
	for i := 0; i < wc; i++ {
		go func(id int) {
			defer wg.Done()
			worker(id)
		}(i + 1)
	}
	for i, in := range inputs {
		jobs <- job{i: i, raw: in.Raw}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]BatchItemResult, len(inputs))
	ok, fail := 0, 0
	for r := range results {
		out[r.Index] = r
		if r.Status == "ok" {
			ok++
		} else {
			fail++
		}
	}

	log.WithFields(logrus.Fields{
		"succeeded": ok,
		"failed":    fail,
	}).Info("batch finished")

	c.JSON(http.StatusOK, BatchResponse{
		Processed: len(inputs),
		Succeeded: ok,
		Failed:    fail,
		Results:   out,
	})
}

// ReconstructInput is an ad-hoc thread of raw messages to process together.
type ReconstructInput struct {
	Messages []content.RawMessage `json:"messages" binding:"required"`
}

// ReconstructThread processes a whole thread and returns the display view.
//
// @Summary      Reconstruct a thread view
// @Description  Orders messages chronologically, processes each against its predecessor and returns the view newest-first with the latest message expanded
// @Tags         threads
// @Accept       json
// @Produce      json
// @Param        body  body  ReconstructInput  true  "Thread messages"
// @Success      200  {object}  thread.View
// @Failure      400  {object}  map[string]string
// @Router       /threads/reconstruct [post]
func (pc *ProcessController) ReconstructThread(c *gin.Context) {
	log := pc.reqLogger(c).WithField("handler", "ReconstructThread")

	var in ReconstructInput
	if err := c.ShouldBindJSON(&in); err != nil {
		log.WithError(err).Warn("bad thread body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view := pc.reconstructor.Reconstruct(in.Messages)
	c.JSON(http.StatusOK, view)
}

// GetByID
// @Summary      Get processed message by ID
// @Tags         messages
// @Produce      json
// @Param        id   path      string  true  "Message ID"
// @Success      200  {object}  repository.MessageEntity
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /messages/{id} [get]
func (pc *ProcessController) GetByID(c *gin.Context) {
	log := pc.reqLogger(c).WithField("handler", "GetByID")

	id := c.Param("id")
	if id == "" {
		log.Warn("missing id param")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	ent, err := pc.repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrMessageNotFound {
			log.WithField("id", id).Warn("message not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		log.WithError(err).Error("repo.GetByID failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, ent)
}

// GetAll
// @Summary      List processed messages
// @Tags         messages
// @Produce      json
// @Param        limit   query   int  false  "Limit"   minimum(1)
// @Param        offset  query   int  false  "Offset"  minimum(0)
// @Success      200  {object}  MessagesListResponse
// @Failure      500  {object}  map[string]string
// @Router       /messages [get]
func (pc *ProcessController) GetAll(c *gin.Context) {
	log := pc.reqLogger(c).WithField("handler", "List")

	limit := 50
	offset := 0
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	if o := c.Query("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	items, err := pc.repo.GetAll(ctx, limit, offset)
	if err != nil {
		log.WithError(err).Error("repo.GetAll failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"limit":  limit,
		"offset": offset,
		"count":  len(items),
		"items":  items,
	})
}

// GetThreadMessages
// @Summary      List stored messages of a thread
// @Tags         threads
// @Produce      json
// @Param        id   path      string  true  "Thread ID"
// @Success      200  {array}   repository.MessageEntity
// @Failure      500  {object}  map[string]string
// @Router       /threads/{id}/messages [get]
func (pc *ProcessController) GetThreadMessages(c *gin.Context) {
	log := pc.reqLogger(c).WithField("handler", "GetThreadMessages")

	threadID := c.Param("id")
	if threadID == "" {
		log.Warn("missing thread id param")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	items, err := pc.repo.GetByThread(ctx, threadID)
	if err != nil {
		log.WithError(err).Error("repo.GetByThread failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, items)
}
