package scenario

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const scenarioTypeName = "scenario"

// Scenario is an ordered list of drill steps built by a Lua script.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one recorded DSL call.
type Step struct {
	Kind string
	Args map[string]any
}

// LoadScenarioFromFile runs a Lua script that must return a Scenario.
func LoadScenarioFromFile(path string) (*Scenario, error) {
	state := newState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	scenario, err := runScript(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

// LoadScenarioFromString runs Lua source that must return a Scenario.
func LoadScenarioFromString(name, source string) (*Scenario, error) {
	state := newState()
	if err := lua.LoadString(state, source); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	scenario, err := runScript(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = name
	}
	return scenario, nil
}

func newState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerLuaTypes(state)
	return state
}

func runScript(state *lua.State) (*Scenario, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	return scenario, nil
}

func registerLuaTypes(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)

	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	scenario := &Scenario{Name: name}
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

// Every method returns the scenario so calls can be chained.
var scenarioMethods = []lua.RegistryFunction{
	{Name: "cap", Function: scenarioCap},
	{Name: "task", Function: scenarioTask},
	{Name: "beads", Function: scenarioBeads},
	{Name: "encode", Function: scenarioEncode},
	{Name: "edit", Function: scenarioEdit},
	{Name: "answer", Function: scenarioAnswer},
	{Name: "solve", Function: scenarioSolve},
	{Name: "reset", Function: scenarioReset},
	{Name: "expect_correct", Function: scenarioExpectCorrect},
	{Name: "expect_incorrect", Function: scenarioExpectIncorrect},
	{Name: "expect_value", Function: scenarioExpectValue},
	{Name: "expect_counts", Function: scenarioExpectCounts},
	{Name: "expect_overflow", Function: scenarioExpectOverflow},
	{Name: "expect_inputs", Function: scenarioExpectInputs},
}

func scenarioCap(state *lua.State) int {
	scenario := checkScenario(state)
	value := int(lua.CheckNumber(state, 2))
	appendStep(scenario, "cap", map[string]any{"value": value})
	return chain(state)
}

func scenarioTask(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(scenario, "task", tableToMap(state, 2))
	return chain(state)
}

func scenarioBeads(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(scenario, "beads", map[string]any{"counts": tableToGo(state, 2)})
	return chain(state)
}

func scenarioEncode(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(scenario, "encode", tableToMap(state, 2))
	return chain(state)
}

func scenarioEdit(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(scenario, "edit", tableToMap(state, 2))
	return chain(state)
}

func scenarioAnswer(state *lua.State) int {
	scenario := checkScenario(state)
	value := lua.CheckNumber(state, 2)
	appendStep(scenario, "answer", map[string]any{"value": value})
	return chain(state)
}

func scenarioSolve(state *lua.State) int {
	appendStep(checkScenario(state), "solve", nil)
	return chain(state)
}

func scenarioReset(state *lua.State) int {
	appendStep(checkScenario(state), "reset", nil)
	return chain(state)
}

func scenarioExpectCorrect(state *lua.State) int {
	appendStep(checkScenario(state), "expect_correct", nil)
	return chain(state)
}

func scenarioExpectIncorrect(state *lua.State) int {
	appendStep(checkScenario(state), "expect_incorrect", nil)
	return chain(state)
}

func scenarioExpectValue(state *lua.State) int {
	scenario := checkScenario(state)
	value := lua.CheckNumber(state, 2)
	appendStep(scenario, "expect_value", map[string]any{"value": value})
	return chain(state)
}

func scenarioExpectCounts(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(scenario, "expect_counts", map[string]any{"counts": tableToGo(state, 2)})
	return chain(state)
}

func scenarioExpectOverflow(state *lua.State) int {
	scenario := checkScenario(state)
	expected := true
	if !state.IsNoneOrNil(2) {
		expected = state.ToBoolean(2)
	}
	appendStep(scenario, "expect_overflow", map[string]any{"value": expected})
	return chain(state)
}

// scenarioExpectInputs takes a list; an empty table expects no operand inputs.
func scenarioExpectInputs(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	values := tableToGo(state, 2)
	if _, ok := values.([]any); !ok {
		values = []any{}
	}
	appendStep(scenario, "expect_inputs", map[string]any{"values": values})
	return chain(state)
}

func chain(state *lua.State) int {
	state.PushValue(1)
	return 1
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func appendStep(scenario *Scenario, kind string, data map[string]any) {
	if scenario == nil {
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: data})
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

// tableToGo returns a []any for sequence tables and a map otherwise.
func tableToGo(state *lua.State, index int) any {
	if state.TypeOf(index) != lua.TypeTable {
		return nil
	}

	index = state.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		if isArray {
			if state.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := state.ToInteger(-2); ok && idx > 0 {
				count++
				if idx > maxIndex {
					maxIndex = idx
				}
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}

	return tableToMap(state, index)
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
