package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/juntagrico-contribution/app/repository"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/billing"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/contribution"
)

// Global controller instances
var (
	contributionService         *contribution.Service
	authController              *AuthController
	adminController             *AdminController
	contributionController      *ContributionController
	adminContributionController *AdminContributionController
	adminRoundController        *AdminRoundController
)

// InitializeControllers wires all controllers against the global repositories.
// sink and locker may be nil.
func InitializeControllers(sink billing.Sink, locker contribution.Locker) {
	repos := repository.GetGlobalRepositories()
	contributionService = contribution.NewService(repos, sink, locker, contribution.SettingsConfig)
	showMenu = contributionService.ShowMenu

	authController = NewAuthController(repos.Member)
	adminController = NewAdminController(repos, contributionService)
	contributionController = NewContributionController(contributionService)
	adminContributionController = NewAdminContributionController(contributionService, repos)
	adminRoundController = NewAdminRoundController(repos, contribution.SettingsConfig)
}

// GetContributionService returns the global contribution service
func GetContributionService() *contribution.Service {
	if contributionService == nil {
		InitializeControllers(nil, nil)
	}
	return contributionService
}

func getAuthController() *AuthController {
	if authController == nil {
		InitializeControllers(nil, nil)
	}
	return authController
}

func getAdminController() *AdminController {
	if adminController == nil {
		InitializeControllers(nil, nil)
	}
	return adminController
}

func getContributionController() *ContributionController {
	if contributionController == nil {
		InitializeControllers(nil, nil)
	}
	return contributionController
}

func getAdminContributionController() *AdminContributionController {
	if adminContributionController == nil {
		InitializeControllers(nil, nil)
	}
	return adminContributionController
}

func getAdminRoundController() *AdminRoundController {
	if adminRoundController == nil {
		InitializeControllers(nil, nil)
	}
	return adminRoundController
}

// Adapter functions used by the router

func HandleLogin(c *fiber.Ctx) error  { return getAuthController().HandleLogin(c) }
func HandleLogout(c *fiber.Ctx) error { return getAuthController().HandleLogout(c) }

// Member pages

func HandleContributionSelect(c *fiber.Ctx) error {
	return getContributionController().HandleSelect(c)
}

func HandleContributionView(c *fiber.Ctx) error {
	return getContributionController().HandleView(c)
}

// Admin dashboard and settings

func HandleAdminDashboard(c *fiber.Ctx) error {
	return getAdminController().HandleDashboard(c)
}

func HandleAdminSettings(c *fiber.Ctx) error {
	return getAdminController().HandleSettings(c)
}

func HandleAdminSettingsUpdate(c *fiber.Ctx) error {
	return getAdminController().HandleSettingsUpdate(c)
}

// Round overview

func HandleAdminContributionList(c *fiber.Ctx) error {
	return getAdminContributionController().HandleList(c)
}

func HandleAdminContributionDetails(c *fiber.Ctx) error {
	return getAdminContributionController().HandleDetails(c)
}

func HandleAdminContributionSummary(c *fiber.Ctx) error {
	return getAdminContributionController().HandleSummary(c)
}

func HandleAdminContributionStatus(c *fiber.Ctx) error {
	return getAdminContributionController().HandleStatus(c)
}

func HandleAdminContributionTransfer(c *fiber.Ctx) error {
	return getAdminContributionController().HandleTransfer(c)
}

// Round, option and condition management

func HandleAdminRoundCreate(c *fiber.Ctx) error {
	return getAdminRoundController().HandleCreate(c)
}

func HandleAdminRoundEdit(c *fiber.Ctx) error {
	return getAdminRoundController().HandleEdit(c)
}

func HandleAdminRoundDelete(c *fiber.Ctx) error {
	return getAdminRoundController().HandleDelete(c)
}

func HandleAdminOptionCreate(c *fiber.Ctx) error {
	return getAdminRoundController().HandleOptionCreate(c)
}

func HandleAdminOptionEdit(c *fiber.Ctx) error {
	return getAdminRoundController().HandleOptionEdit(c)
}

func HandleAdminOptionDelete(c *fiber.Ctx) error {
	return getAdminRoundController().HandleOptionDelete(c)
}

func HandleAdminConditionSave(c *fiber.Ctx) error {
	return getAdminRoundController().HandleConditionSave(c)
}

func HandleAdminConditionDelete(c *fiber.Ctx) error {
	return getAdminRoundController().HandleConditionDelete(c)
}
