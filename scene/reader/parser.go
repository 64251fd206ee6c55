package reader

import (
	"github.com/Enrico-Carissimi/RayTracer/hdr"
	"github.com/Enrico-Carissimi/RayTracer/scene"
	"github.com/Enrico-Carissimi/RayTracer/types"
)

// Scene is the result of parsing a description file: the world content, the
// camera if one was declared, and the named materials and float variables the
// file defined.
type Scene struct {
	World               scene.World
	Camera              *scene.Camera
	Materials           map[string]scene.Material
	FloatVariables      map[string]float32
	OverriddenVariables map[string]struct{}
}

type parser struct {
	stream *InputStream
	res    *Resource // resource being parsed, anchors relative texture paths
	out    *Scene
}

// ReadSceneFile parses a scene description from a path or URL. The variables
// map declares caller-side float overrides: definitions of those names inside
// the file are silently ignored.
func ReadSceneFile(path string, variables map[string]float32) (*Scene, error) {
	res, err := NewResource(path, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return parseScene(NewInputStream(res, res.Path()), res, variables)
}

// ParseScene parses a scene description from an already-open stream.
func ParseScene(stream *InputStream, variables map[string]float32) (*Scene, error) {
	return parseScene(stream, nil, variables)
}

func parseScene(stream *InputStream, res *Resource, variables map[string]float32) (*Scene, error) {
	out := &Scene{
		Materials:           make(map[string]scene.Material),
		FloatVariables:      make(map[string]float32),
		OverriddenVariables: make(map[string]struct{}),
	}
	for name, value := range variables {
		out.FloatVariables[name] = value
		out.OverriddenVariables[name] = struct{}{}
	}

	p := &parser{stream: stream, res: res, out: out}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *parser) parse() error {
	for {
		token, err := p.stream.ReadToken()
		if err != nil {
			return err
		}
		if token.Tag == TokenStop {
			return nil
		}
		if token.Tag != TokenKeyword {
			return grammarErrorf(token.Location, "expected a keyword, got %s", token)
		}

		switch token.Keyword {
		case KeywordFloat:
			err = p.parseFloatDeclaration()
		case KeywordSphere:
			err = p.parseSphere()
		case KeywordPlane:
			err = p.parsePlane()
		case KeywordCamera:
			if p.out.Camera != nil {
				return grammarErrorf(token.Location, "cannot define more than one camera")
			}
			err = p.parseCamera()
		case KeywordMaterial:
			err = p.parseMaterial()
		case KeywordPointLight:
			err = p.parsePointLight()
		default:
			return grammarErrorf(token.Location, "unexpected keyword %s", token)
		}

		if err != nil {
			return err
		}
	}
}

// expectSymbol consumes the next token and checks it is the given symbol.
func (p *parser) expectSymbol(symbol byte) error {
	token, err := p.stream.ReadToken()
	if err != nil {
		return err
	}
	if token.Tag != TokenSymbol || token.Symbol != symbol {
		return grammarErrorf(token.Location, "expected '%c', got %s", symbol, token)
	}
	return nil
}

// expectKeywords consumes a keyword token and checks it is one of the given
// alternatives.
func (p *parser) expectKeywords(alternatives ...Keyword) (Keyword, error) {
	token, err := p.stream.ReadToken()
	if err != nil {
		return 0, err
	}
	if token.Tag != TokenKeyword {
		return 0, grammarErrorf(token.Location, "expected a keyword, got %s", token)
	}

	for _, kw := range alternatives {
		if token.Keyword == kw {
			return kw, nil
		}
	}

	expected := ""
	for i, kw := range alternatives {
		if i > 0 {
			expected += ", "
		}
		expected += kw.String()
	}
	return 0, grammarErrorf(token.Location, "expected one of {%s}, got %s", expected, token)
}

// expectNumber consumes a number literal or an identifier naming a float
// variable.
func (p *parser) expectNumber() (float32, error) {
	token, err := p.stream.ReadToken()
	if err != nil {
		return 0, err
	}

	switch token.Tag {
	case TokenNumber:
		return token.Number, nil
	case TokenIdentifier:
		value, ok := p.out.FloatVariables[token.Str]
		if !ok {
			return 0, grammarErrorf(token.Location, "unknown variable %q", token.Str)
		}
		return value, nil
	}

	return 0, grammarErrorf(token.Location, "expected a number, got %s", token)
}

func (p *parser) expectString() (string, error) {
	token, err := p.stream.ReadToken()
	if err != nil {
		return "", err
	}
	if token.Tag != TokenString {
		return "", grammarErrorf(token.Location, "expected a string, got %s", token)
	}
	return token.Str, nil
}

func (p *parser) expectIdentifier() (string, error) {
	token, err := p.stream.ReadToken()
	if err != nil {
		return "", err
	}
	if token.Tag != TokenIdentifier {
		return "", grammarErrorf(token.Location, "expected an identifier, got %s", token)
	}
	return token.Str, nil
}

// parseVector reads "[x, y, z]".
func (p *parser) parseVector() (types.Vec3, error) {
	var v types.Vec3
	if err := p.expectSymbol('['); err != nil {
		return v, err
	}
	for i := 0; i < 3; i++ {
		if i > 0 {
			if err := p.expectSymbol(','); err != nil {
				return v, err
			}
		}
		value, err := p.expectNumber()
		if err != nil {
			return v, err
		}
		v[i] = value
	}
	return v, p.expectSymbol(']')
}

// parseColor reads "<r, g, b>".
func (p *parser) parseColor() (types.Color, error) {
	var channels [3]float32
	if err := p.expectSymbol('<'); err != nil {
		return types.Color{}, err
	}
	for i := 0; i < 3; i++ {
		if i > 0 {
			if err := p.expectSymbol(','); err != nil {
				return types.Color{}, err
			}
		}
		value, err := p.expectNumber()
		if err != nil {
			return types.Color{}, err
		}
		channels[i] = value
	}
	return types.RGB(channels[0], channels[1], channels[2]), p.expectSymbol('>')
}

func (p *parser) parseTexture() (scene.Texture, error) {
	kw, err := p.expectKeywords(KeywordUniform, KeywordCheckered, KeywordImage)
	if err != nil {
		return nil, err
	}

	if err := p.expectSymbol('('); err != nil {
		return nil, err
	}

	var result scene.Texture
	switch kw {
	case KeywordUniform:
		color, err := p.parseColor()
		if err != nil {
			return nil, err
		}
		result = scene.NewUniformTexture(color)

	case KeywordCheckered:
		c1, err := p.parseColor()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(','); err != nil {
			return nil, err
		}
		c2, err := p.parseColor()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(','); err != nil {
			return nil, err
		}
		steps, err := p.expectNumber()
		if err != nil {
			return nil, err
		}
		result = scene.NewCheckeredTexture(c1, c2, int(steps))

	case KeywordImage:
		location := p.stream.Location
		fileName, err := p.expectString()
		if err != nil {
			return nil, err
		}
		texture, err := p.loadImageTexture(fileName)
		if err != nil {
			return nil, grammarErrorf(location, "cannot load image %q: %s", fileName, err)
		}
		result = texture
	}

	return result, p.expectSymbol(')')
}

// loadImageTexture streams a PFM image, normalizes it to average luminosity 1
// and clamps it, as image textures expect colors in [0, 1).
func (p *parser) loadImageTexture(fileName string) (scene.Texture, error) {
	res, err := NewResource(fileName, p.res)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	image, err := hdr.ReadPFM(res)
	if err != nil {
		return nil, err
	}
	image.Normalize(1, 0)
	image.Clamp()

	return scene.NewImageTexture(image), nil
}

// parseMaterial reads "NAME((diffuse|specular)(TEXTURE, TEXTURE))" and stores
// the material under its name. The first texture is the albedo, the second
// the emitted radiance.
func (p *parser) parseMaterial() error {
	name, err := p.expectIdentifier()
	if err != nil {
		return err
	}
	if err := p.expectSymbol('('); err != nil {
		return err
	}

	kw, err := p.expectKeywords(KeywordDiffuse, KeywordSpecular)
	if err != nil {
		return err
	}

	if err := p.expectSymbol('('); err != nil {
		return err
	}
	albedo, err := p.parseTexture()
	if err != nil {
		return err
	}
	if err := p.expectSymbol(','); err != nil {
		return err
	}
	emitted, err := p.parseTexture()
	if err != nil {
		return err
	}
	if err := p.expectSymbol(')'); err != nil {
		return err
	}
	if err := p.expectSymbol(')'); err != nil {
		return err
	}

	if kw == KeywordDiffuse {
		p.out.Materials[name] = scene.NewDiffuseMaterial(albedo, emitted, 1)
	} else {
		p.out.Materials[name] = scene.NewSpecularMaterial(albedo, emitted, 0, scene.DefaultThresholdAngle)
	}
	return nil
}

// parseTransformation reads a '*'-separated chain of transformation atoms,
// composed left to right.
func (p *parser) parseTransformation() (types.Transformation, error) {
	result := types.Identity()

	for {
		kw, err := p.expectKeywords(
			KeywordIdentity,
			KeywordTranslation,
			KeywordRotationX,
			KeywordRotationY,
			KeywordRotationZ,
			KeywordScaling,
		)
		if err != nil {
			return result, err
		}

		if kw != KeywordIdentity {
			if err := p.expectSymbol('('); err != nil {
				return result, err
			}

			switch kw {
			case KeywordTranslation:
				v, err := p.parseVector()
				if err != nil {
					return result, err
				}
				result = result.Mul(types.Translation(v))
			case KeywordRotationX, KeywordRotationY, KeywordRotationZ:
				angle, err := p.expectNumber()
				if err != nil {
					return result, err
				}
				axis := types.AxisX
				if kw == KeywordRotationY {
					axis = types.AxisY
				} else if kw == KeywordRotationZ {
					axis = types.AxisZ
				}
				result = result.Mul(types.Rotation(angle, axis))
			case KeywordScaling:
				location := p.stream.Location
				v, err := p.parseVector()
				if err != nil {
					return result, err
				}
				scale, err := types.Scaling(v)
				if err != nil {
					return result, grammarErrorf(location, "%s", err)
				}
				result = result.Mul(scale)
			}

			if err := p.expectSymbol(')'); err != nil {
				return result, err
			}
		}

		token, err := p.stream.ReadToken()
		if err != nil {
			return result, err
		}
		if token.Tag != TokenSymbol || token.Symbol != '*' {
			p.stream.UnreadToken(token)
			return result, nil
		}
	}
}

// parseShape reads "(MATERIAL_NAME, TRANSFORMATION)" shared by spheres and
// planes.
func (p *parser) parseShape() (scene.Material, types.Transformation, error) {
	if err := p.expectSymbol('('); err != nil {
		return nil, types.Transformation{}, err
	}

	location := p.stream.Location
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, types.Transformation{}, err
	}
	material, ok := p.out.Materials[name]
	if !ok {
		return nil, types.Transformation{}, grammarErrorf(location, "unknown material %q", name)
	}

	if err := p.expectSymbol(','); err != nil {
		return nil, types.Transformation{}, err
	}
	transform, err := p.parseTransformation()
	if err != nil {
		return nil, types.Transformation{}, err
	}

	return material, transform, p.expectSymbol(')')
}

func (p *parser) parseSphere() error {
	material, transform, err := p.parseShape()
	if err != nil {
		return err
	}
	p.out.World.AddShape(scene.NewSphere(material, transform))
	return nil
}

func (p *parser) parsePlane() error {
	material, transform, err := p.parseShape()
	if err != nil {
		return err
	}
	p.out.World.AddShape(scene.NewPlane(material, transform))
	return nil
}

// parsePointLight reads "(VECTOR, COLOR, NUMBER)": position, color, linear
// radius.
func (p *parser) parsePointLight() error {
	if err := p.expectSymbol('('); err != nil {
		return err
	}
	position, err := p.parseVector()
	if err != nil {
		return err
	}
	if err := p.expectSymbol(','); err != nil {
		return err
	}
	color, err := p.parseColor()
	if err != nil {
		return err
	}
	if err := p.expectSymbol(','); err != nil {
		return err
	}
	radius, err := p.expectNumber()
	if err != nil {
		return err
	}
	if err := p.expectSymbol(')'); err != nil {
		return err
	}

	p.out.World.AddLight(scene.PointLight{
		Position:     types.Point3{position[0], position[1], position[2]},
		Color:        color,
		LinearRadius: radius,
	})
	return nil
}

// parseCamera reads "((perspective|orthogonal), ASPECT, WIDTH, DISTANCE,
// TRANSFORMATION)".
func (p *parser) parseCamera() error {
	if err := p.expectSymbol('('); err != nil {
		return err
	}
	kw, err := p.expectKeywords(KeywordPerspective, KeywordOrthogonal)
	if err != nil {
		return err
	}
	if err := p.expectSymbol(','); err != nil {
		return err
	}
	aspectRatio, err := p.expectNumber()
	if err != nil {
		return err
	}
	if err := p.expectSymbol(','); err != nil {
		return err
	}
	width, err := p.expectNumber()
	if err != nil {
		return err
	}
	if err := p.expectSymbol(','); err != nil {
		return err
	}
	distance, err := p.expectNumber()
	if err != nil {
		return err
	}
	if err := p.expectSymbol(','); err != nil {
		return err
	}
	transform, err := p.parseTransformation()
	if err != nil {
		return err
	}
	if err := p.expectSymbol(')'); err != nil {
		return err
	}

	projection := scene.Perspective
	if kw == KeywordOrthogonal {
		projection = scene.Orthogonal
	}
	p.out.Camera = scene.NewCamera(projection, aspectRatio, int(width), distance, transform)
	return nil
}

// parseFloatDeclaration reads "NAME(NUMBER)". Redefining a name is an error
// unless the caller overrode it, in which case the file's value is ignored.
func (p *parser) parseFloatDeclaration() error {
	name, err := p.expectIdentifier()
	if err != nil {
		return err
	}
	location := p.stream.Location

	if err := p.expectSymbol('('); err != nil {
		return err
	}
	value, err := p.expectNumber()
	if err != nil {
		return err
	}
	if err := p.expectSymbol(')'); err != nil {
		return err
	}

	_, overridden := p.out.OverriddenVariables[name]
	if _, defined := p.out.FloatVariables[name]; defined && !overridden {
		return grammarErrorf(location, "redefinition of variable %q", name)
	}
	if !overridden {
		p.out.FloatVariables[name] = value
	}
	return nil
}
