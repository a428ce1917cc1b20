package report

import (
	"github.com/arc-moshe/GCO-RideAmigos/internal/model"
)

// Table is the shape handed to the output sink: a named grid with typed
// cells. Cell values are string, float64, int, *int (nil renders blank)
// or *float64 (nil renders blank).
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

const dateLayout = "2006-01-02"

// tdmModeOrder fixes the mode column-group order of the TDM extract.
var tdmModeOrder = []model.Method{
	model.MethodBike, model.MethodCarpool, model.MethodCWW, model.MethodScooter,
	model.MethodTelework, model.MethodTransit, model.MethodVanpool, model.MethodWalk,
}

// gdotLogOrder fixes the log-count column order of the GDOT summary.
var gdotLogOrder = []model.Method{
	model.MethodCarpool, model.MethodVanpool, model.MethodTransit, model.MethodTelework,
	model.MethodWalk, model.MethodBike, model.MethodScooter, model.MethodCWW,
}

// Tables renders the four reports in their output column layouts.
func (r *Result) Tables() []Table {
	return []Table{
		r.tableauTable(),
		r.gdotTable(),
		r.tdmTable(),
		r.auditTable(),
	}
}

func (r *Result) tableauTable() Table {
	t := Table{
		Name:    "Tableau",
		Columns: []string{"Date", "Home ZIP", "ESO", "Method", "Trips", "Miles", "VMR", "CO2", "Dollars"},
	}
	for _, row := range r.Tableau {
		t.Rows = append(t.Rows, []any{
			row.Date.Format(dateLayout), row.HomeZIP, row.ServiceArea, string(row.Method),
			row.Trips, row.Miles, row.VMR, row.CO2, row.Dollars,
		})
	}
	return t
}

func (r *Result) gdotTable() Table {
	t := Table{
		Name: "GDOT Report",
		Columns: []string{
			"Territory", "New Users", "Loggers", "Clean Loggers",
			"Carpool Logs", "Vanpool Logs", "Transit Logs", "Telework Logs",
			"Walk Logs", "Bike Logs", "Scooter Logs", "CWW Logs",
			"Reduced VMT", "Reduced CO2 (pounds)", "Money Saved",
		},
	}
	for _, row := range r.GDOT {
		cells := []any{row.Territory, row.NewUsers, row.Loggers, row.CleanLoggers}
		for _, m := range gdotLogOrder {
			cells = append(cells, row.Logs[m])
		}
		cells = append(cells, row.ReducedVMT, row.ReducedCO2, row.MoneySaved)
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func (r *Result) tdmTable() Table {
	columns := []string{
		"User_ID", "Home_X", "Home_Y", "Work_X", "Work_Y",
		"TMA", "Legacy", "Active", "New", "Created_Date",
	}
	for _, m := range tdmModeOrder {
		columns = append(columns,
			string(m)+"_Logger", string(m)+"_Trips", string(m)+"_Miles",
			string(m)+"_VMR", string(m)+"_CO2_lbs", string(m)+"_Dollars",
		)
	}
	columns = append(columns,
		"Clean_Logger", "Clean_Trips", "Clean_Miles", "Clean_VMR", "Clean_CO2_lbs", "Clean_Dollars",
		"Month", "County_ID_Work", "County_Work", "Zip_Code_Work", "ESO",
		"County_ID_Home", "County_Home", "Zip_Code_Home",
	)

	t := Table{Name: "TDM", Columns: columns}
	for _, row := range r.TDM {
		active := 0
		if row.Active {
			active = 1
		}
		cells := []any{
			row.UserID, row.HomeX, row.HomeY, row.WorkX, row.WorkY,
			row.TMA, row.Legacy, active, row.New, row.CreatedDate,
		}
		for _, m := range tdmModeOrder {
			mm := row.Modes[m]
			cells = append(cells, mm.Logger, mm.Trips, mm.Miles, mm.VMR, mm.CO2Pounds, mm.Dollars)
		}
		cells = append(cells,
			row.Clean.Logger, row.Clean.Trips, row.Clean.Miles, row.Clean.VMR,
			row.Clean.CO2Pounds, row.Clean.Dollars,
			row.Month.Format(dateLayout), row.CountyIDW, row.CountyWork, row.ZipWork, row.ESO,
			row.CountyIDH, row.CountyHome, row.ZipHome,
		)
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func (r *Result) auditTable() Table {
	t := Table{
		Name:    "ESO Audit",
		Columns: []string{"User ID", "First Name", "Last Name", "Work Location", "TMA", "ESO Geocoded"},
	}
	for _, row := range r.Audit {
		t.Rows = append(t.Rows, []any{
			row.UserID, row.FirstName, row.LastName, row.WorkLocation, row.TMA, row.GeocodedESO,
		})
	}
	return t
}
