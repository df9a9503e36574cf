package handler

import "github.com/gin-gonic/gin"

// Handlers bundles everything the router mounts.
type Handlers struct {
	Subjects  *SubjectHandler
	Topics    *TopicHandler
	Materials *MaterialHandler
	Tasks     *TaskHandler
	Generate  *GenerateHandler
	Stats     *StatsHandler
	Utils     *UtilsHandler
	Health    *HealthHandler
}

// RegisterRoutes mounts the API under prefix, plus the root-level probes.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers) {
	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)

	api := r.Group(prefix)

	subjects := api.Group("/subjects")
	subjects.GET("", h.Subjects.List)
	subjects.POST("", h.Subjects.Create)
	subjects.GET("/:id", h.Subjects.Get)
	subjects.PUT("/:id", h.Subjects.Update)
	subjects.DELETE("/:id", h.Subjects.Delete)
	subjects.GET("/:id/topics", h.Topics.ListBySubject)

	topics := api.Group("/topics")
	topics.GET("", h.Topics.List)
	topics.POST("", h.Topics.Create)
	topics.GET("/:id", h.Topics.Get)
	topics.PUT("/:id", h.Topics.Update)
	topics.DELETE("/:id", h.Topics.Delete)

	materials := api.Group("/materials")
	materials.GET("", h.Materials.List)
	materials.GET("/:id", h.Materials.Get)
	materials.GET("/:id/history", h.Materials.History)
	materials.GET("/:id/clos", h.Materials.CLOs)
	materials.DELETE("/:id", h.Materials.Delete)

	tasks := api.Group("/tasks")
	tasks.GET("", h.Tasks.List)
	tasks.POST("", h.Tasks.Create)
	tasks.GET("/stats", h.Tasks.Stats)
	tasks.GET("/:id", h.Tasks.Get)
	tasks.PATCH("/:id/status", h.Tasks.UpdateStatus)
	tasks.DELETE("/:id", h.Tasks.Delete)

	api.POST("/generate", h.Generate.Generate)
	api.GET("/stats", h.Stats.Overview)

	utils := api.Group("/utils")
	utils.POST("/sanitize", h.Utils.Sanitize)
	utils.GET("/bloom-keywords", h.Utils.BloomKeywords)
	utils.GET("/themes", h.Utils.Themes)
	utils.GET("/version/increment", h.Utils.IncrementVersion)
}
