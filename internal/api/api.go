package api

import (
	"net/http"

	adsHandler "footballadmin/internal/ads/handler"
	authHandler "footballadmin/internal/auth/handler"
	campaignHandler "footballadmin/internal/campaigns/handler"
	channelHandler "footballadmin/internal/channels/handler"
	ingestHandler "footballadmin/internal/ingest/handler"
	matchHandler "footballadmin/internal/matches/handler"
	teamHandler "footballadmin/internal/teams/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router          *gin.RouterGroup
	authHandler     authHandler.Handler
	teamHandler     teamHandler.Handler
	channelHandler  channelHandler.Handler
	matchHandler    matchHandler.Handler
	adHandler       adsHandler.Handler
	campaignHandler campaignHandler.Handler
	ingestHandler   ingestHandler.Handler
}

func New(
	router *gin.RouterGroup,
	authHandler authHandler.Handler,
	teamHandler teamHandler.Handler,
	channelHandler channelHandler.Handler,
	matchHandler matchHandler.Handler,
	adHandler adsHandler.Handler,
	campaignHandler campaignHandler.Handler,
	ingestHandler ingestHandler.Handler,
) API {
	return API{
		router:          router,
		authHandler:     authHandler,
		teamHandler:     teamHandler,
		channelHandler:  channelHandler,
		matchHandler:    matchHandler,
		adHandler:       adHandler,
		campaignHandler: campaignHandler,
		ingestHandler:   ingestHandler,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.POST("/login", a.authHandler.HandleLogin)
		authGroup.POST("/logout", a.authHandler.HandleLogout)
	}
	protectedGroup := apiGroup.Group("", a.authHandler.RequireSession)
	{
		protectedGroup.GET("/teams", a.teamHandler.HandleListTeams)
		protectedGroup.POST("/teams", a.teamHandler.HandleCreateTeam)
		protectedGroup.GET("/teams/:id", a.teamHandler.HandleGetTeam)
		protectedGroup.PUT("/teams/:id", a.teamHandler.HandleUpdateTeam)
		protectedGroup.DELETE("/teams/:id", a.teamHandler.HandleDeleteTeam)

		protectedGroup.GET("/channels", a.channelHandler.HandleListChannels)
		protectedGroup.POST("/channels", a.channelHandler.HandleCreateChannel)
		protectedGroup.GET("/channels/:id", a.channelHandler.HandleGetChannel)
		protectedGroup.PUT("/channels/:id", a.channelHandler.HandleUpdateChannel)
		protectedGroup.DELETE("/channels/:id", a.channelHandler.HandleDeleteChannel)

		protectedGroup.GET("/matches", a.matchHandler.HandleListMatches)
		protectedGroup.POST("/matches", a.matchHandler.HandleCreateMatch)
		protectedGroup.GET("/matches/:id", a.matchHandler.HandleGetMatch)
		protectedGroup.PUT("/matches/:id", a.matchHandler.HandleUpdateMatch)
		protectedGroup.DELETE("/matches/:id", a.matchHandler.HandleDeleteMatch)
		protectedGroup.PATCH("/matches/:id/toggle-live", a.matchHandler.HandleToggleLive)
		protectedGroup.PATCH("/matches/:id/notifications", a.matchHandler.HandleSetNotifications)

		protectedGroup.GET("/ads", a.adHandler.HandleGetAdConfig)
		protectedGroup.PUT("/ads", a.adHandler.HandleUpdateAdConfig)
		protectedGroup.POST("/send-ad-notification", a.adHandler.HandleSendAdNotification)

		protectedGroup.GET("/campaigns", a.campaignHandler.HandleListCampaigns)
		protectedGroup.POST("/campaigns", a.campaignHandler.HandleCreateCampaign)
		protectedGroup.GET("/campaigns/:id", a.campaignHandler.HandleGetCampaign)
		protectedGroup.PUT("/campaigns/:id", a.campaignHandler.HandleUpdateCampaign)
		protectedGroup.DELETE("/campaigns/:id", a.campaignHandler.HandleDeleteCampaign)
		protectedGroup.PATCH("/campaigns/:id/status", a.campaignHandler.HandleSetStatus)
		protectedGroup.POST("/campaigns/:id/send", a.campaignHandler.HandleSendCampaign)

		protectedGroup.POST("/fetch/competitions", a.ingestHandler.HandleFetchCompetitions)
		protectedGroup.POST("/fetch/matches", a.ingestHandler.HandleFetchMatches)
		protectedGroup.POST("/fetch/standings", a.ingestHandler.HandleFetchStandings)
		protectedGroup.POST("/fetch/scorers", a.ingestHandler.HandleFetchScorers)
		protectedGroup.POST("/fetch/teams", a.ingestHandler.HandleFetchTeams)
		protectedGroup.POST("/fetch/news", a.ingestHandler.HandleFetchNews)
		protectedGroup.POST("/fetch/all", a.ingestHandler.HandleFetchAll)

		protectedGroup.GET("/competitions", a.ingestHandler.HandleListCompetitions)
		protectedGroup.GET("/api-matches", a.ingestHandler.HandleListAPIMatches)
		protectedGroup.GET("/standings", a.ingestHandler.HandleListStandings)
		protectedGroup.GET("/scorers", a.ingestHandler.HandleListScorers)
		protectedGroup.GET("/news", a.ingestHandler.HandleListNews)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
