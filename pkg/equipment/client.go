// Package equipment talks to the asset-dashboard backend: it creates
// equipment entries and reads back departments and their assets.
package equipment

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/opsdash/inventory-import/pkg/models"
)

type Client struct {
	http     *http.Client
	endpoint *url.URL
}

func New(endpoint string) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("scheme %s is not supported", u.Scheme)
	}

	return &Client{
		endpoint: u,
		http:     http.DefaultClient,
	}, nil
}

// CreateRequest describes one equipment entry to be created. Optional
// fields (Manufacturer, SerialNumber, Model) are omitted from the
// request body when empty.
type CreateRequest struct {
	Name            string
	Category        models.Category
	Status          string
	Quantity        int
	Value           float64
	AssignTo        string
	Manufacturer    string
	Notes           string
	AcquisitionDate string
	SerialNumber    string
	Model           string
}

func (r *CreateRequest) values() url.Values {
	v := url.Values{}
	v.Set("itemName", r.Name)
	v.Set("itemCategory", string(r.Category))
	v.Set("itemStatus", r.Status)
	v.Set("itemQuantity", strconv.Itoa(r.Quantity))
	v.Set("itemValue", strconv.FormatFloat(r.Value, 'f', 2, 64))
	v.Set("assignTo", r.AssignTo)
	v.Set("itemNotes", r.Notes)
	v.Set("acquisitionDate", r.AcquisitionDate)
	if r.Manufacturer != "" {
		v.Set("itemManufacturer", r.Manufacturer)
	}
	if r.SerialNumber != "" {
		v.Set("itemSerial", r.SerialNumber)
	}
	if r.Model != "" {
		v.Set("itemModel", r.Model)
	}
	return v
}

type CreateResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	ItemID  int    `json:"item_id,omitempty"`
}

// Create adds an equipment entry. A reply with success=false is
// returned as an error so callers only need to check err.
func (c *Client) Create(req *CreateRequest) (*CreateResponse, error) {
	addUrl, err := c.endpoint.Parse("/api/equipment/add")
	if err != nil {
		return nil, fmt.Errorf("unable to parse URL: %v", err)
	}

	res, err := c.http.Post(
		addUrl.String(),
		"application/x-www-form-urlencoded",
		strings.NewReader(req.values().Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to perform HTTP request: %v", err)
	}
	defer res.Body.Close()

	// A non-2xx status is a failure no matter what the body claims.
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}

	var reply CreateResponse
	dec := json.NewDecoder(res.Body)
	if err := dec.Decode(&reply); err != nil {
		return nil, fmt.Errorf("unable to decode response: %v", err)
	}

	if !reply.Success {
		if reply.Error != "" {
			return &reply, fmt.Errorf("equipment creation failed: %s", reply.Error)
		}
		return &reply, fmt.Errorf("equipment creation failed: %s", res.Status)
	}

	return &reply, nil
}

// Departments lists the departments equipment can be assigned to.
func (c *Client) Departments() ([]models.Department, error) {
	depsUrl, err := c.endpoint.Parse("/api/departments")
	if err != nil {
		return nil, fmt.Errorf("unable to parse URL: %v", err)
	}

	res, err := c.http.Get(depsUrl.String())
	if err != nil {
		return nil, fmt.Errorf("unable to perform HTTP request: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}

	var reply struct {
		Departments []models.Department `json:"departments"`
	}
	dec := json.NewDecoder(res.Body)
	if err := dec.Decode(&reply); err != nil {
		return nil, fmt.Errorf("unable to decode response: %v", err)
	}
	return reply.Departments, nil
}

// DepartmentEquipment lists the equipment currently assigned to the
// given department.
func (c *Client) DepartmentEquipment(department string) ([]models.Equipment, error) {
	eqUrl, err := c.endpoint.Parse("/api/department_equipment/" + url.PathEscape(department))
	if err != nil {
		return nil, fmt.Errorf("unable to parse URL: %v", err)
	}

	res, err := c.http.Get(eqUrl.String())
	if err != nil {
		return nil, fmt.Errorf("unable to perform HTTP request: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}

	var reply struct {
		Equipment []models.Equipment `json:"equipment"`
	}
	dec := json.NewDecoder(res.Body)
	if err := dec.Decode(&reply); err != nil {
		return nil, fmt.Errorf("unable to decode response: %v", err)
	}
	return reply.Equipment, nil
}

// Healthz checks if the dashboard backend is reachable and returns true if it is.
func (c *Client) Healthz() (bool, error) {
	healthEndpoint, err := c.endpoint.Parse("/healthz")
	if err != nil {
		return false, err
	}
	res, err := c.http.Get(healthEndpoint.String())
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	return res.StatusCode == http.StatusOK, nil
}

func (c *Client) SetHttpTransport(transport http.RoundTripper) {
	c.http.Transport = transport
}
