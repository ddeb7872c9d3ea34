package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledctrlr/pwmcalc/pkg/circuit"
	"github.com/ledctrlr/pwmcalc/pkg/firmware"
)

var (
	testVoltages = []float64{0.25, 0.5, 0.75, 1.0, 1.25, 1.5, 2.0, 2.5}
	testCodes    = []int{40, 100, 158}
)

const goldenFullReport = `PWM ADC driving AL8807 LED Driver

Output unloaded:

 Vc [V]		Vo [V]		  d [-]
 ----------------------------------------
 0.250V		3.155V		 20 / 7.8%
 0.500V		3.167V		 40 / 15.7%
 0.750V		3.179V		 60 / 23.5%
 1.000V		3.190V		 80 / 31.4%
 1.250V		3.202V		100 / 39.2%
 1.500V		3.214V		119 / 46.7%
 2.000V		3.238V		158 / 62.0%
 2.500V		3.262V		195 / 76.5%


Output connected to AL8807 CTRL pin:

 d [-]		d [%]		Vctrl [V]
 ----------------------------------------
  40		15.6%		0.540V
 100		39.1%		1.218V
 158		61.7%		1.874V


 Vctrl [V]	d [%]		d [-]
 ------------------------------------
 0.250V		5.6%		  14
 0.500V		14.2%		  36
 0.750V		22.9%		  59
 1.000V		31.5%		  81
 1.250V		40.2%		 103
 1.500V		48.8%		 125
 2.000V		66.1%		 169
 2.500V		83.3%		 213
`

func fullReport(t *testing.T) *Report {
	t.Helper()
	p := circuit.Default()

	r := New(p)
	r.Title = Title

	var err error
	r.Unloaded, err = UnloadedRows(p, testVoltages)
	require.NoError(t, err)
	r.LoadedVoltages, err = LoadedVoltageRows(p, testCodes)
	require.NoError(t, err)
	r.LoadedDuties, err = LoadedDutyRows(p, testVoltages)
	require.NoError(t, err)

	return r
}

func TestTextFullReport(t *testing.T) {
	var buf bytes.Buffer
	NewText(&buf, false).Write(fullReport(t))

	assert.Equal(t, goldenFullReport, buf.String())
}

func TestTextIdempotent(t *testing.T) {
	var a, b bytes.Buffer
	NewText(&a, false).Write(fullReport(t))
	NewText(&b, false).Write(fullReport(t))

	assert.Equal(t, a.String(), b.String())
}

func TestTextLoadedDutiesAlone(t *testing.T) {
	p := circuit.Default()
	r := New(p)

	var err error
	r.LoadedDuties, err = LoadedDutyRows(p, []float64{1.0, 3.0})
	require.NoError(t, err)

	var buf bytes.Buffer
	NewText(&buf, false).Write(r)

	want := `Output connected to AL8807 CTRL pin:

 Vctrl [V]	d [%]		d [-]
 ------------------------------------
 1.000V		31.5%		  81
 3.000V		100.6%		 255*
`
	assert.Equal(t, want, buf.String())
	require.Len(t, r.Clamped(), 1)
	assert.Equal(t, 3.0, r.Clamped()[0].Input)
}

func TestRowsPropagateErrors(t *testing.T) {
	p := circuit.Default()

	_, err := UnloadedRows(p, []float64{1, 4})
	assert.ErrorIs(t, err, circuit.ErrVoltageOutOfRange)

	_, err = LoadedVoltageRows(p, []int{256})
	assert.ErrorIs(t, err, circuit.ErrDutyOutOfRange)

	_, err = LoadedDutyRows(p, []float64{-1})
	assert.ErrorIs(t, err, circuit.ErrVoltageOutOfRange)
}

func TestPresetRows(t *testing.T) {
	rows, err := PresetRows(circuit.Default(), firmware.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "default", rows[0].Name)
	assert.Equal(t, 128, rows[0].Code)
	assert.Equal(t, 39, rows[1].Code)
	assert.Equal(t, 97, rows[2].Code)
	assert.Equal(t, 193, rows[3].Code)
	for _, r := range rows {
		v, err := circuit.Default().LoadedVoltage(r.Code)
		require.NoError(t, err)
		assert.Equal(t, v.Voltage, r.Vctrl, r.Name)
	}
	assert.InDelta(t, 50.0, rows[0].Percent, 1e-9)
}

func TestPulseRows(t *testing.T) {
	p := circuit.Default()
	rows, err := PulseRows(p, firmware.DefaultSettings(), []int{1500, 1100, 3000})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "1", rows[0].State)
	assert.Equal(t, 97, rows[0].Code)
	assert.Equal(t, "0", rows[1].State)
	assert.Equal(t, 39, rows[1].Code)
	assert.Equal(t, firmware.NoChange, rows[2].State)
	assert.Equal(t, 39, rows[2].Code)

	v, err := p.LoadedVoltage(39)
	require.NoError(t, err)
	assert.Equal(t, v.Voltage, rows[2].Vctrl)

	var buf bytes.Buffer
	NewText(&buf, false).Write(&Report{Pulses: rows})
	assert.Contains(t, buf.String(), " 3000\t\t-\t\t 39\t\t")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, fullReport(t)))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.NotContains(t, got, "Title")
	assert.NotContains(t, got, "presets")
	assert.Len(t, got["unloaded"], 8)
	assert.Len(t, got["loadedVoltages"], 3)

	params := got["params"].(map[string]interface{})
	assert.Equal(t, 1000.0, params["rs"])
	assert.Equal(t, 2.0, params["n"])
}
