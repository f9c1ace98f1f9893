package main

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/config"
	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/parser"
	"github.com/rhyrak/go-timetable/internal/store"
	"github.com/rhyrak/go-timetable/internal/validator"
)

type server struct {
	cfg  *config.Configuration
	repo *store.Repository
	log  *zap.Logger
}

func newRouter(s *server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/problems", s.handleGetProblems)
	r.GET("/problems/:id", s.handleGetProblemWithId)
	r.DELETE("/problems/:id", s.handleDeleteProblemWithId)
	r.POST("/problems", s.handlePostProblem)
	return r
}

func (s *server) handleGetProblems(ctx *gin.Context) {
	records, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("listing problems", zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"problems": records,
	})
}

func (s *server) handleGetProblemWithId(ctx *gin.Context) {
	rec, err := s.repo.Get(ctx, ctx.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		ctx.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("loading problem", zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"problem": rec,
		"slots":   rec.Slots,
	})
}

func (s *server) handleDeleteProblemWithId(ctx *gin.Context) {
	err := s.repo.Delete(ctx, ctx.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		ctx.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("deleting problem", zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// handlePostProblem parses an uploaded problem file (form field "problem")
// and stores the outcome. An optional "policy" field overrides the
// configured parse policy.
func (s *server) handlePostProblem(ctx *gin.Context) {
	fh, err := ctx.FormFile("problem")
	if err != nil {
		ctx.String(http.StatusBadRequest, "missing file: problem")
		return
	}
	if fh.Size > s.cfg.Server.UploadLimit {
		ctx.Status(http.StatusRequestEntityTooLarge)
		return
	}

	opts := s.cfg.ParserOptions()
	if p := ctx.PostForm("policy"); p != "" {
		policy, err := parser.ParsePolicy(p)
		if err != nil {
			ctx.String(http.StatusBadRequest, err.Error())
			return
		}
		opts.Policy = policy
	}
	opts.Logger = s.log.With(zap.String("upload", fh.Filename))

	f, err := fh.Open()
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, s.cfg.Server.UploadLimit))
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}

	rec := parseUpload(string(data), opts)
	rec, err = s.repo.Insert(ctx, rec)
	if err != nil {
		s.log.Error("storing problem", zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return
	}
	s.log.Info("problem stored", zap.String("id", rec.ID), zap.String("status", rec.Status))

	status := http.StatusCreated
	if rec.Status == store.StatusFailed {
		status = http.StatusUnprocessableEntity
	}
	ctx.JSON(status, gin.H{
		"id":     rec.ID,
		"status": rec.Status,
		"report": rec.Report,
	})
}

// parseUpload turns an uploaded file into a record ready to be stored.
func parseUpload(input string, opts parser.Options) store.Record {
	rec := store.Record{Input: input, Status: store.StatusParsed}

	problem, err := parser.Parse(strings.NewReader(input), opts)
	if problem == nil {
		rec.Status = store.StatusFailed
		rec.Report = err.Error()
		return rec
	}
	rec.Name = problem.Name()

	_, report := validator.Validate(problem)
	if err != nil {
		rec.Status = store.StatusFailed
		report = err.Error() + "\n" + report
	}
	rec.Report = report

	if slots, err := csvio.ExportSlotsString(problem); err == nil {
		rec.Slots = slots
	}
	return rec
}
