package controllers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/renukakulkarni2721/MindMirror/config"
	"github.com/renukakulkarni2721/MindMirror/models"
	"github.com/renukakulkarni2721/MindMirror/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindErrorMessage 缺userId给固定提示，其它绑定失败（如JSON格式错误）返回具体原因
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "UserID" && fe.Tag() == "required" {
				return "userId is required"
			}
		}
	}
	return "Invalid request: " + err.Error()
}

// ReflectionController 反思记录相关接口
type ReflectionController struct {
	analysisService *services.AnalysisService
	store           *services.ReflectionStore
	quota           *services.QuotaService
	audioSupported  bool
}

func NewReflectionController(analysisService *services.AnalysisService, store *services.ReflectionStore, quota *services.QuotaService, audioSupported bool) *ReflectionController {
	return &ReflectionController{
		analysisService: analysisService,
		store:           store,
		quota:           quota,
		audioSupported:  audioSupported,
	}
}

// CreateDailyAnalysis 提交一条反思并做情绪分析。
// 记录先以 pending 状态落库，分析成功推进到 completed，失败推进到 failed。
func (rc *ReflectionController) CreateDailyAnalysis(ctx *gin.Context) {
	var req models.DailyAnalysisRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": bindErrorMessage(err)})
		return
	}
	if err := req.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	isAudio := req.AudioData != ""
	if isAudio && !rc.audioSupported {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "audio input is not enabled on this deployment"})
		return
	}

	var audioBytes []byte
	if isAudio {
		decoded, err := base64.StdEncoding.DecodeString(req.AudioData)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "audioData is not valid base64"})
			return
		}
		if len(decoded) > models.MaxAudioBytes {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "audio exceeds the 10MB limit"})
			return
		}
		audioBytes = decoded
	}

	// 每日额度检查
	if ok, remaining := rc.quota.Consume(ctx, req.UserID); !ok {
		ctx.JSON(http.StatusForbidden, gin.H{
			"success":   false,
			"error":     "daily analysis quota exceeded",
			"remaining": remaining,
		})
		return
	}

	// 先以 pending 状态落库
	record := &models.ReflectionRecord{
		UserID:     req.UserID,
		Date:       req.Date,
		Transcript: req.TextInput,
		Status:     models.StatusPending,
	}
	id, err := rc.store.Create(ctx, record)
	if err != nil {
		config.Logger.Errorw("反思记录创建失败", "error", err, "uid", req.UserID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save reflection"})
		return
	}

	var data *models.AnalysisData
	if isAudio {
		data, err = rc.analysisService.AnalyzeAudio(ctx, audioBytes, req.MimeType)
	} else {
		data, err = rc.analysisService.AnalyzeText(ctx, req.TextInput)
	}
	if err != nil {
		if markErr := rc.store.MarkFailed(ctx, id); markErr != nil {
			config.Logger.Errorw("更新分析状态失败", "error", markErr, "reflectionId", id)
		}
		rc.respondAnalysisError(ctx, err, req.UserID)
		return
	}

	if err := rc.store.UpdateAnalysis(ctx, id, data); err != nil {
		config.Logger.Errorw("写入分析结果失败", "error", err, "reflectionId", id)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save analysis"})
		return
	}

	ctx.JSON(http.StatusOK, models.DailyAnalysisResponse{
		Success:      true,
		ReflectionID: id,
		Status:       models.StatusCompleted,
		Data:         data,
	})
}

// GetReflections 返回某用户最近的反思列表，默认7条
func (rc *ReflectionController) GetReflections(ctx *gin.Context) {
	userID := ctx.Query("userId")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "userId is required"})
		return
	}

	limit := 7
	if limitStr := ctx.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	reflections, err := rc.store.ListRecent(ctx, userID, limit)
	if err != nil {
		config.Logger.Errorw("查询反思列表失败", "error", err, "uid", userID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load reflections"})
		return
	}

	ctx.JSON(http.StatusOK, models.ReflectionListResponse{
		Success:     true,
		Reflections: reflections,
	})
}

// GetReflectionForDate 返回某用户某天的反思，重复时取最新一条
func (rc *ReflectionController) GetReflectionForDate(ctx *gin.Context) {
	userID := ctx.Query("userId")
	date := ctx.Query("date")
	if userID == "" || date == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "userId and date are required"})
		return
	}

	record, err := rc.store.GetByUserAndDate(ctx, userID, date)
	if errors.Is(err, services.ErrReflectionNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "no reflection for this date"})
		return
	}
	if err != nil {
		config.Logger.Errorw("查询反思失败", "error", err, "uid", userID, "date", date)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load reflection"})
		return
	}

	ctx.JSON(http.StatusOK, models.ReflectionResponse{
		Success:    true,
		Reflection: record,
	})
}

// GetReflectionStatus 查询分析状态（pending/completed/failed）
func (rc *ReflectionController) GetReflectionStatus(ctx *gin.Context) {
	id := ctx.Param("id")
	userID := ctx.Query("userId")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "userId is required"})
		return
	}

	record, err := rc.store.GetByID(ctx, id)
	if errors.Is(err, services.ErrReflectionNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "reflection not found"})
		return
	}
	if err != nil {
		config.Logger.Errorw("查询反思状态失败", "error", err, "reflectionId", id)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load reflection"})
		return
	}
	if record.UserID != userID {
		ctx.JSON(http.StatusForbidden, gin.H{"success": false, "error": "reflection belongs to another user"})
		return
	}

	ctx.JSON(http.StatusOK, models.StatusResponse{
		Success: true,
		Status:  record.Status,
	})
}

// CreateWeeklyAnalysis 取最近至多7条反思做周度模式分析，少于3条不分析
func (rc *ReflectionController) CreateWeeklyAnalysis(ctx *gin.Context) {
	var req models.WeeklyAnalysisRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": bindErrorMessage(err)})
		return
	}

	reflections, err := rc.store.ListRecent(ctx, req.UserID, 7)
	if err != nil {
		config.Logger.Errorw("查询反思列表失败", "error", err, "uid", req.UserID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load reflections"})
		return
	}

	if len(reflections) < services.MinWeeklyReflections {
		ctx.JSON(http.StatusOK, models.WeeklyAnalysisResponse{
			Success:         true,
			HasEnoughData:   false,
			ReflectionCount: len(reflections),
		})
		return
	}

	if ok, remaining := rc.quota.Consume(ctx, req.UserID); !ok {
		ctx.JSON(http.StatusForbidden, gin.H{
			"success":   false,
			"error":     "daily analysis quota exceeded",
			"remaining": remaining,
		})
		return
	}

	data, err := rc.analysisService.AnalyzeWeekly(ctx, reflections)
	if err != nil {
		rc.respondAnalysisError(ctx, err, req.UserID)
		return
	}

	ctx.JSON(http.StatusOK, models.WeeklyAnalysisResponse{
		Success:         true,
		HasEnoughData:   true,
		ReflectionCount: len(reflections),
		Data:            data,
	})
}

// DeleteReflection 删除一条反思，所有权按请求体里的userId重新校验
func (rc *ReflectionController) DeleteReflection(ctx *gin.Context) {
	id := ctx.Param("id")

	var req models.DeleteReflectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": bindErrorMessage(err)})
		return
	}

	err := rc.store.DeleteOwned(ctx, id, req.UserID)
	switch {
	case errors.Is(err, services.ErrReflectionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "reflection not found"})
	case errors.Is(err, services.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"success": false, "error": "reflection belongs to another user"})
	case err != nil:
		config.Logger.Errorw("删除反思失败", "error", err, "reflectionId", id, "uid", req.UserID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to delete reflection"})
	default:
		ctx.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// respondAnalysisError 把网关的带类型错误映射成HTTP响应
func (rc *ReflectionController) respondAnalysisError(ctx *gin.Context, err error, userID string) {
	var rateLimited *services.RateLimitedError
	if errors.As(err, &rateLimited) {
		config.Logger.Warnw("模型服务限流，重试已耗尽", "uid", userID)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success":     false,
			"error":       rateLimited.Error(),
			"rateLimited": true,
		})
		return
	}

	config.Logger.Errorw("分析失败", "error", err, "uid", userID)
	ctx.JSON(http.StatusInternalServerError, gin.H{
		"success":     false,
		"error":       err.Error(),
		"rateLimited": false,
	})
}
