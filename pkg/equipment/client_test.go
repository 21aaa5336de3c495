package equipment_test

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"

	"github.com/opsdash/inventory-import/pkg/equipment"
	"github.com/opsdash/inventory-import/pkg/models"
)

const dashboardAddr = "http://dashboard.lan:8080"

func getClient(t *testing.T) *equipment.Client {
	c, err := equipment.New(dashboardAddr)
	if err != nil {
		t.Fatalf("unable to create client: %v", err)
	}
	return c
}

func TestCreate(t *testing.T) {
	defer gock.Off()
	gock.New(dashboardAddr).
		Post("/api/equipment/add").
		BodyString("^" + regexp.QuoteMeta(
			`acquisitionDate=2024-03-15&assignTo=IT&itemCategory=hardware&`+
				`itemManufacturer=TechSupplies+Sp.+z+o.o.&itemName=Laptop+X1&`+
				`itemNotes=Imported+from+invoice+FV%2F2024%2F001+dated+2024-03-15&`+
				`itemQuantity=2&itemSerial=SN-001&itemStatus=available&itemValue=4500.00`,
		) + "$").
		Reply(http.StatusOK).
		JSON(equipment.CreateResponse{Success: true, ItemID: 42})

	c := getClient(t)
	reply, err := c.Create(&equipment.CreateRequest{
		Name:            "Laptop X1",
		Category:        models.CategoryHardware,
		Status:          "available",
		Quantity:        2,
		Value:           4500,
		AssignTo:        "IT",
		Manufacturer:    "TechSupplies Sp. z o.o.",
		Notes:           "Imported from invoice FV/2024/001 dated 2024-03-15",
		AcquisitionDate: "2024-03-15",
		SerialNumber:    "SN-001",
	})
	if err != nil {
		t.Fatalf("unable to create equipment: %v", err)
	}
	assert.True(t, reply.Success)
	assert.Equal(t, 42, reply.ItemID)
	assert.True(t, gock.IsDone())
}

func TestCreateOmitsEmptyOptionals(t *testing.T) {
	defer gock.Off()
	gock.New(dashboardAddr).
		Post("/api/equipment/add").
		BodyString("^" + regexp.QuoteMeta(
			`acquisitionDate=2024-03-15&assignTo=&itemCategory=other&`+
				`itemName=Mystery+item&itemNotes=n&itemQuantity=1&itemStatus=available&`+
				`itemValue=0.00`,
		) + "$").
		Reply(http.StatusOK).
		JSON(equipment.CreateResponse{Success: true, ItemID: 1})

	c := getClient(t)
	_, err := c.Create(&equipment.CreateRequest{
		Name:            "Mystery item",
		Category:        models.CategoryOther,
		Status:          "available",
		Quantity:        1,
		Notes:           "n",
		AcquisitionDate: "2024-03-15",
	})
	assert.Nil(t, err)
	assert.True(t, gock.IsDone())
}

func TestCreateFailure(t *testing.T) {
	defer gock.Off()
	gock.New(dashboardAddr).
		Post("/api/equipment/add").
		Reply(http.StatusOK).
		JSON(equipment.CreateResponse{Success: false, Error: "duplicate serial number"})

	c := getClient(t)
	reply, err := c.Create(&equipment.CreateRequest{
		Name:     "Laptop X1",
		Category: models.CategoryHardware,
		Status:   "available",
		Quantity: 1,
	})
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "duplicate serial number")
	assert.False(t, reply.Success)
}

func TestCreateServerError(t *testing.T) {
	defer gock.Off()
	gock.New(dashboardAddr).
		Post("/api/equipment/add").
		Reply(http.StatusInternalServerError).
		JSON(equipment.CreateResponse{Success: true, ItemID: 7})

	c := getClient(t)
	_, err := c.Create(&equipment.CreateRequest{
		Name:     "Laptop X1",
		Category: models.CategoryHardware,
		Status:   "available",
		Quantity: 1,
	})
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestDepartments(t *testing.T) {
	defer gock.Off()
	gock.New(dashboardAddr).
		Get("/api/departments").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"departments": []models.Department{
				{Value: "it", Label: "IT"},
				{Value: "hr", Label: "Human Resources"},
			},
		})

	c := getClient(t)
	departments, err := c.Departments()
	if err != nil {
		t.Fatalf("unable to list departments: %v", err)
	}
	assert.Len(t, departments, 2)
	assert.Equal(t, "it", departments[0].Value)
}

func TestDepartmentEquipment(t *testing.T) {
	defer gock.Off()
	gock.New(dashboardAddr).
		Get("/api/department_equipment/it").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"equipment": []models.Equipment{
				{ID: 42, Name: "Laptop X1", Type: "hardware", Quantity: 2, Status: "available"},
			},
		})

	c := getClient(t)
	eq, err := c.DepartmentEquipment("it")
	if err != nil {
		t.Fatalf("unable to list department equipment: %v", err)
	}
	assert.Len(t, eq, 1)
	assert.Equal(t, "Laptop X1", eq[0].Name)
}

func TestHealthz(t *testing.T) {
	defer gock.Off()
	gock.New(dashboardAddr).
		Get("/healthz").
		Reply(http.StatusOK).
		BodyString(`{}`)

	c := getClient(t)
	healthy, err := c.Healthz()
	assert.True(t, healthy)
	assert.Nil(t, err)
}
