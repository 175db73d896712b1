package bindgen

import (
	"fmt"
	"strings"

	"github.com/branched-services/go-solbind/compiler"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/log"
)

// MethodKind tags a generated member.
type MethodKind int

const (
	MethodDeploy MethodKind = iota
	MethodCall
	MethodSend
	MethodEvent
)

// Arg is a normalized method parameter.
type Arg struct {
	Name  string
	Type  HostType
	Param Parameter
}

// Field is a field of a generated output or event struct.
type Field struct {
	Name  string
	Type  HostType
	Tag   string
	Param Parameter
}

// Struct is an auxiliary type emitted next to a contract binding.
type Struct struct {
	Name   string
	Fields []Field
}

// Method is one generated member of a binding.
type Method struct {
	Kind MethodKind
	// Name is the Go identifier of the generated function or method.
	Name   string
	Member Member
	Inputs []Arg
	// Single is set for calls with exactly one output.
	Single *HostType
	// Result is set for calls with several outputs.
	Result *Struct
	// Event is set for event accessors.
	Event *Struct
}

func (m *Method) IsDeploy() bool { return m.Kind == MethodDeploy }
func (m *Method) IsCall() bool   { return m.Kind == MethodCall }
func (m *Method) IsSend() bool   { return m.Kind == MethodSend }
func (m *Method) IsEvent() bool  { return m.Kind == MethodEvent }

// Contract is the binding model of one manifest contract.
type Contract struct {
	Name      string
	Qualified string
	// Base is the parent binding the contract embeds, or empty for the root
	// *solbind.Contract.
	Base    string
	ABI     string
	Bin     string
	Methods []*Method
	Structs []*Struct
}

// Deploy returns the deployment entry point of the contract.
func (c *Contract) Deploy() *Method {
	for _, m := range c.Methods {
		if m.Kind == MethodDeploy {
			return m
		}
	}
	return nil
}

// Synthesize builds binding models for the manifest contracts in manifest
// order. parents maps contract names to their Solidity parent as produced
// by ResolveInheritance. Contracts named in exclude are skipped; a parent
// that is skipped or absent from the manifest falls back to the root handle.
func Synthesize(manifest *compiler.Manifest, parents map[string]string, exclude mapset.Set[string]) ([]*Contract, error) {
	var (
		contracts []*Contract
		byName    = make(map[string]*Contract)
		structs   = make(map[string]string) // struct name -> declaring contract
	)
	for _, mc := range manifest.Contracts {
		name := capitalize(mc.Type())
		if exclude != nil && (exclude.Contains(mc.Type()) || exclude.Contains(name)) {
			log.Debug("Skipping excluded contract", "contract", mc.Name)
			continue
		}
		if prev, ok := byName[name]; ok {
			return nil, &SynthesisError{Contract: name, Err: fmt.Errorf("declared in both %s and %s", prev.Qualified, mc.Name)}
		}
		c, err := synthesizeContract(name, mc)
		if err != nil {
			return nil, err
		}
		for _, st := range c.Structs {
			if owner, ok := structs[st.Name]; ok {
				return nil, &SynthesisError{Contract: name, Err: fmt.Errorf("type %s already declared by %s", st.Name, owner)}
			}
			structs[st.Name] = name
		}
		contracts = append(contracts, c)
		byName[name] = c
	}
	// Every binding shares one package, so contract and struct names must not collide.
	for _, c := range contracts {
		if owner, ok := structs[c.Name]; ok {
			return nil, &SynthesisError{Contract: c.Name, Err: fmt.Errorf("type %s already declared by %s", c.Name, owner)}
		}
	}
	resolveBases(contracts, byName, parents)
	return contracts, nil
}

func synthesizeContract(name string, mc compiler.Contract) (*Contract, error) {
	members, err := ParseMembers(mc.ABI)
	if err != nil {
		return nil, &SynthesisError{Contract: name, Err: err}
	}
	c := &Contract{
		Name:      name,
		Qualified: mc.Name,
		ABI:       mc.ABI,
		Bin:       mc.Bin,
	}
	deploy := &Method{Kind: MethodDeploy, Name: "Deploy" + name, Member: Member{Kind: KindConstructor}}
	c.Methods = append(c.Methods, deploy)

	var (
		usedCalls  = make(map[string]bool)
		usedEvents = make(map[string]bool)
	)
	for _, m := range members {
		fail := func(err error) error {
			return &SynthesisError{Contract: name, Member: m.Signature(), Err: err}
		}
		switch m.Kind {
		case KindConstructor:
			inputs, err := methodArgs(m.Inputs)
			if err != nil {
				return nil, fail(err)
			}
			deploy.Member = m
			deploy.Inputs = inputs

		case KindFunction:
			inputs, err := methodArgs(m.Inputs)
			if err != nil {
				return nil, fail(err)
			}
			base := abi.ResolveNameConflict(capitalize(m.Key), func(s string) bool { return usedCalls[s] })
			usedCalls[base] = true
			method := &Method{Name: base + "Async", Member: m, Inputs: inputs}
			switch len(m.Outputs) {
			case 0:
				method.Kind = MethodSend
			case 1:
				typ, err := MapType(m.Outputs[0].Type, true)
				if err != nil {
					return nil, fail(err)
				}
				method.Kind = MethodCall
				method.Single = &typ
			default:
				result, err := outputStruct(name+base+"Output", m.Outputs)
				if err != nil {
					return nil, fail(err)
				}
				method.Kind = MethodCall
				method.Result = result
				c.Structs = append(c.Structs, result)
			}
			c.Methods = append(c.Methods, method)

		case KindEvent:
			base := abi.ResolveNameConflict(capitalize(m.Key), func(s string) bool { return usedEvents[s] })
			usedEvents[base] = true
			ev, err := eventStruct(name+base+"Event", m.Inputs)
			if err != nil {
				return nil, fail(err)
			}
			c.Structs = append(c.Structs, ev)
			c.Methods = append(c.Methods, &Method{Kind: MethodEvent, Name: "Get" + base + "Event", Member: m, Event: ev})
		}
	}
	log.Debug("Synthesized binding", "contract", name, "members", len(c.Methods), "structs", len(c.Structs))
	return c, nil
}

func methodArgs(params []Parameter) ([]Arg, error) {
	names := paramNames(params)
	args := make([]Arg, len(params))
	for i, p := range params {
		typ, err := MapType(p.Type, false)
		if err != nil {
			return nil, err
		}
		args[i] = Arg{Name: names[i], Type: typ, Param: p}
	}
	return args, nil
}

func outputStruct(name string, outputs []Parameter) (*Struct, error) {
	names := fieldNames(outputs, "Property")
	s := &Struct{Name: name, Fields: make([]Field, len(outputs))}
	for i, p := range outputs {
		typ, err := MapType(p.Type, true)
		if err != nil {
			return nil, err
		}
		s.Fields[i] = Field{Name: names[i], Type: typ, Param: p}
	}
	return s, nil
}

func eventStruct(name string, inputs []Parameter) (*Struct, error) {
	names := fieldNames(inputs, "Parameter")
	s := &Struct{Name: name, Fields: make([]Field, len(inputs))}
	for i, p := range inputs {
		typ, err := MapType(p.Type, true)
		if err != nil {
			return nil, err
		}
		// Indexed arrays only survive as the keccak hash of their encoding.
		if p.Indexed && strings.HasSuffix(p.Type, "]") {
			typ = HostType{Name: "[]byte"}
		}
		tag := p.Name + "," + p.Type
		if p.Indexed {
			tag += ",indexed"
		}
		s.Fields[i] = Field{Name: names[i], Type: typ, Tag: fmt.Sprintf("solbind:%q", tag), Param: p}
	}
	return s, nil
}

// resolveBases links contracts to their parent binding. Parents outside the
// generated set and inheritance cycles fall back to the root handle, since
// embedding them would not compile.
func resolveBases(contracts []*Contract, byName map[string]*Contract, parents map[string]string) {
	for _, c := range contracts {
		parent, ok := parents[c.Name]
		if !ok {
			continue
		}
		if _, generated := byName[parent]; !generated || parent == c.Name {
			log.Warn("Parent contract is not generated, embedding the root handle", "contract", c.Name, "parent", parent)
			continue
		}
		c.Base = parent
	}
	for _, c := range contracts {
		seen := map[string]bool{c.Name: true}
		for p := c.Base; p != ""; p = byName[p].Base {
			if p == c.Name {
				log.Warn("Inheritance cycle, embedding the root handle", "contract", c.Name)
				c.Base = ""
				break
			}
			if seen[p] {
				break
			}
			seen[p] = true
		}
	}
}
