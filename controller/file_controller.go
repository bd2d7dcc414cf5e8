// controller/file_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-rpatel/janus/model"
	"github.com/dev-rpatel/janus/pep"
)

// FileController is a protected resource group showing the guard form of
// the enforcement point: each route is wrapped by RequireAction with the
// action name and whatever resource attributes the call site can supply.
// The handlers themselves stand in for the business logic of the host
// application.
type FileController struct {
	pep *pep.PEP
}

func NewFileController(enforcementPoint *pep.PEP) *FileController {
	return &FileController{
		pep: enforcementPoint,
	}
}

// RegisterRoutes registers the API routes
func (fc *FileController) RegisterRoutes(r *gin.RouterGroup) {
	files := r.Group("/files")
	{
		files.GET("", fc.pep.RequireAction("list-files", nil), fc.ListFiles)
		files.POST("", fc.pep.RequireAction("upload-file", nil), fc.UploadFile)
		files.GET("/:id", fc.pep.RequireAction("download-file", ownerAttribute), fc.DownloadFile)
		files.DELETE("/:id", fc.pep.RequireAction("delete-file", ownerAttribute), fc.DeleteFile)
	}

	users := r.Group("/users")
	{
		users.PUT("/:id/quota", fc.pep.RequireAction("update-quota", targetRoleAttribute), fc.UpdateQuota)
	}
}

// ownerAttribute reads the owner of the targeted file. In the host
// application this comes from the file metadata store; here the lookup is
// carried on the request so the policy path stays exercisable end to end.
func ownerAttribute(c *gin.Context) map[string]string {
	owner := c.GetHeader("X-Resource-Owner")
	if owner == "" {
		return nil
	}
	return map[string]string{model.AttributeResourceOwner: owner}
}

// targetRoleAttribute reads the role of the user being administratively
// acted upon.
func targetRoleAttribute(c *gin.Context) map[string]string {
	targetRole := c.GetHeader("X-Target-Role")
	if targetRole == "" {
		return nil
	}
	return map[string]string{model.AttributeTargetRole: targetRole}
}

func (fc *FileController) ListFiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"files": []string{}})
}

func (fc *FileController) UploadFile(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"status": "uploaded"})
}

func (fc *FileController) DownloadFile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
}

func (fc *FileController) DeleteFile(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func (fc *FileController) UpdateQuota(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": "quota updated"})
}
