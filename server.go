package backend

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/opsdash/inventory-import/pkg/equipment"
	"github.com/opsdash/inventory-import/pkg/equipment/caroundtripper"
	"github.com/opsdash/inventory-import/pkg/extraction"
	"github.com/opsdash/inventory-import/pkg/importer"
	"github.com/opsdash/inventory-import/pkg/models"
	"github.com/opsdash/inventory-import/pkg/visibility"
)

type Server struct {
	e          *gin.Engine
	session    *importer.Session
	extraction *extraction.Client
	equipment  *equipment.Client
}

var log = logrus.StandardLogger().WithField("package", "backend")

type Config struct {
	ExtractionAddr string
	DashboardAddr  string
	// DashboardCaPath optionally pins the dashboard backend to a
	// single trusted CA.
	DashboardCaPath string
	Workers         int
	Notifier        importer.Notifier
	Departments     importer.DepartmentView
}

func New(config Config) (*Server, error) {
	extractionClient, err := extraction.New(config.ExtractionAddr)
	if err != nil {
		return nil, err
	}
	equipmentClient, err := equipment.New(config.DashboardAddr)
	if err != nil {
		return nil, err
	}
	if config.DashboardCaPath != "" {
		rt, err := caroundtripper.New(config.DashboardCaPath)
		if err != nil {
			return nil, err
		}
		equipmentClient.SetHttpTransport(rt)
	}

	session, err := importer.New(importer.Config{
		Equipment:   equipmentClient,
		Extraction:  extractionClient,
		Departments: config.Departments,
		Notifier:    config.Notifier,
		Workers:     config.Workers,
	})
	if err != nil {
		return nil, err
	}

	s := Server{
		e:          gin.New(),
		session:    session,
		extraction: extractionClient,
		equipment:  equipmentClient,
	}

	if err := session.Ping(); err != nil {
		log.Warnf("backends not reachable yet: %v", err)
	}

	s.initRoutes()
	return &s, nil
}

func (s *Server) Run(addr string) error {
	return s.e.Run(addr)
}

// Handler exposes the route tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) initRoutes() {
	s.e.Use(gin.Logger())
	s.e.Use(cors.Default())

	g := s.e.Group("/api/v1")
	g.POST("/invoice/process", s.handleProcessInvoice)
	g.GET("/products", s.handleGetProducts)
	g.POST("/products", s.handleAddProduct)
	g.PATCH("/products/:index", s.handlePatchProduct)
	g.DELETE("/products/:index", s.handleDeleteProduct)
	g.POST("/products/:index/import", s.handleImportOne)
	g.PUT("/selection/:index", s.handleSelect)
	g.DELETE("/selection/:index", s.handleDeselect)
	g.POST("/selection/all", s.handleSelectAll)
	g.GET("/selection/count", s.handleSelectionCount)
	g.POST("/import/selected", s.handleImportSelected)
	g.POST("/import/all", s.handleImportAll)
	g.POST("/filters", s.handleFilters)
	g.POST("/reset", s.handleReset)
	g.GET("/departments", s.handleDepartments)
}

var badRequest = gin.H{
	"error": "bad request",
}

var internalServerError = gin.H{
	"error": "internal server error",
}

var notFound = gin.H{
	"error": "not found",
}

func (s *Server) handleProcessInvoice(c *gin.Context) {
	fileHeader, err := c.FormFile("invoice_pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, badRequest)
		return
	}
	alternative := c.PostForm("alternative_method") == "true"

	f, err := fileHeader.Open()
	if err != nil {
		log.Errorf("unable to open upload: %v", err)
		c.JSON(http.StatusInternalServerError, internalServerError)
		return
	}
	defer f.Close()

	result, err := s.extraction.Process(f, fileHeader.Filename, alternative)
	if err != nil {
		log.Errorf("unable to process invoice: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	s.session.LoadResult(result)
	s.respondProducts(c)
}

// ProductRow is a line item plus its selection state as shown in the
// table.
type ProductRow struct {
	models.LineItem
	Selected bool `json:"selected"`
	Visible  bool `json:"visible"`
}

func (s *Server) respondProducts(c *gin.Context) {
	toggles := s.session.Toggles()
	items := s.session.Items()
	rows := make([]ProductRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, ProductRow{
			LineItem: *item,
			Selected: s.session.Selected(item.ID()),
			Visible:  toggles.Visible(item),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"invoice":        s.session.Invoice(),
		"products":       rows,
		"filters":        toggles,
		"selected_count": len(s.session.SelectedIDs()),
	})
}

func (s *Server) handleGetProducts(c *gin.Context) {
	s.respondProducts(c)
}

func (s *Server) handleAddProduct(c *gin.Context) {
	item := s.session.AddItem()
	c.JSON(http.StatusOK, item)
}

type productPatch struct {
	Name       *string          `json:"name"`
	Quantity   *int             `json:"quantity"`
	UnitPrice  *float64         `json:"unit_price"`
	TotalPrice *float64         `json:"total_price"`
	Category   *models.Category `json:"category"`
	Department *string          `json:"assigned_department"`
}

func (s *Server) handlePatchProduct(c *gin.Context) {
	id := c.Param("index")
	var patch productPatch
	if err := c.BindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, badRequest)
		return
	}
	if s.session.Item(id) == nil {
		c.JSON(http.StatusNotFound, notFound)
		return
	}

	if patch.Name != nil {
		if err := s.session.SetItemName(id, *patch.Name); err != nil {
			c.JSON(http.StatusNotFound, notFound)
			return
		}
	}
	if patch.Quantity != nil {
		if err := s.session.SetItemQuantity(id, *patch.Quantity); err != nil {
			c.JSON(http.StatusNotFound, notFound)
			return
		}
	}
	if patch.UnitPrice != nil {
		if err := s.session.SetItemUnitPrice(id, *patch.UnitPrice); err != nil {
			c.JSON(http.StatusNotFound, notFound)
			return
		}
	}
	if patch.TotalPrice != nil {
		if err := s.session.SetItemTotalPrice(id, *patch.TotalPrice); err != nil {
			c.JSON(http.StatusNotFound, notFound)
			return
		}
	}
	if patch.Category != nil {
		if err := s.session.SetItemCategory(id, *patch.Category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
	}
	if patch.Department != nil {
		if err := s.session.AssignDepartment(id, *patch.Department); err != nil {
			c.JSON(http.StatusNotFound, notFound)
			return
		}
	}

	item := s.session.Item(id)
	if item == nil {
		c.JSON(http.StatusNotFound, notFound)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) handleDeleteProduct(c *gin.Context) {
	if err := s.session.RemoveRow(c.Param("index")); err != nil {
		c.JSON(http.StatusNotFound, notFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSelect(c *gin.Context) {
	if err := s.session.Select(c.Param("index")); err != nil {
		c.JSON(http.StatusNotFound, notFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"selected_count": len(s.session.SelectedIDs()),
	})
}

func (s *Server) handleDeselect(c *gin.Context) {
	s.session.Deselect(c.Param("index"))
	c.JSON(http.StatusOK, gin.H{
		"selected_count": len(s.session.SelectedIDs()),
	})
}

func (s *Server) handleSelectAll(c *gin.Context) {
	s.session.SelectAllVisible()
	c.JSON(http.StatusOK, gin.H{
		"selected_count": len(s.session.SelectedIDs()),
	})
}

func (s *Server) handleSelectionCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"selected_count": len(s.session.SelectedIDs()),
	})
}

func (s *Server) handleImportOne(c *gin.Context) {
	id := c.Param("index")
	if s.session.Item(id) == nil {
		c.JSON(http.StatusNotFound, notFound)
		return
	}
	if err := s.session.ImportOne(id); err != nil {
		log.Errorf("unable to import row %s: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, s.session.Item(id))
}

// BatchReply is the JSON shape of a batch outcome.
type BatchReply struct {
	BatchId   string            `json:"batch_id"`
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Errors    map[string]string `json:"errors,omitempty"`
	Message   string            `json:"message"`
}

func batchReply(result *importer.BatchResult) BatchReply {
	reply := BatchReply{
		BatchId:   result.BatchId,
		Total:     result.Total,
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Message:   result.Message(),
	}
	if len(result.Errors) > 0 {
		reply.Errors = map[string]string{}
		for id, err := range result.Errors {
			reply.Errors[id] = err.Error()
		}
	}
	return reply
}

func (s *Server) handleImportSelected(c *gin.Context) {
	c.JSON(http.StatusOK, batchReply(s.session.ImportSelected()))
}

func (s *Server) handleImportAll(c *gin.Context) {
	c.JSON(http.StatusOK, batchReply(s.session.ImportAll()))
}

func (s *Server) handleFilters(c *gin.Context) {
	var toggles visibility.Toggles
	if err := c.BindJSON(&toggles); err != nil {
		c.JSON(http.StatusBadRequest, badRequest)
		return
	}
	s.session.SetToggles(toggles)
	s.respondProducts(c)
}

func (s *Server) handleReset(c *gin.Context) {
	s.session.Reset()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDepartments(c *gin.Context) {
	departments, err := s.equipment.Departments()
	if err != nil {
		log.Errorf("unable to list departments: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"departments": departments,
	})
}
