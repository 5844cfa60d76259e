package loader_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/factorykit/errors"
	"github.com/c360/factorykit/loader"
	"github.com/c360/factorykit/registration"
	"github.com/c360/factorykit/resolver"
)

func shapeContext(t *testing.T, name, text string) *loader.Context {
	t.Helper()
	return loader.NewContext(name, newShapeRegistry(t),
		registration.NewStaticSource(name, text))
}

func TestLoadFactoriesReturnsInstancesInOrder(t *testing.T) {
	ctx := shapeContext(t, "ordered",
		fmt.Sprintf("%s=%s,%s\n", shapeType, triangleName, circleName))

	shapes, err := loader.LoadFactoriesFrom[Shape](newTestLoader(t), ctx, resolver.None())
	require.NoError(t, err)
	require.Len(t, shapes, 2)
	assert.Equal(t, 3, shapes[0].Sides())
	assert.Equal(t, 0, shapes[1].Sides())
}

func TestLoadFactoriesEmptyResult(t *testing.T) {
	ctx := shapeContext(t, "empty", "other.Type=other.Impl\n")

	shapes, err := loader.LoadFactoriesFrom[Shape](newTestLoader(t), ctx, resolver.None())
	require.NoError(t, err)
	assert.NotNil(t, shapes)
	assert.Empty(t, shapes)
}

func TestLoadFactoriesInjectsArguments(t *testing.T) {
	ctx := shapeContext(t, "inject",
		fmt.Sprintf("%s=%s\n", shapeType, squareName))

	shapes, err := loader.LoadFactoriesFrom[Shape](newTestLoader(t), ctx,
		resolver.Of("injected"))
	require.NoError(t, err)
	require.Len(t, shapes, 1)

	square, ok := shapes[0].(Square)
	require.True(t, ok)
	assert.Equal(t, "injected", square.Label)
}

func TestLoadFactoriesUnresolvedArgumentsGetZeroValues(t *testing.T) {
	ctx := shapeContext(t, "zero",
		fmt.Sprintf("%s=%s\n", shapeType, squareName))

	shapes, err := loader.LoadFactoriesFrom[Shape](newTestLoader(t), ctx, resolver.None())
	require.NoError(t, err)
	require.Len(t, shapes, 1)

	square, ok := shapes[0].(Square)
	require.True(t, ok)
	assert.Equal(t, "", square.Label)
}

func TestLoadFactoriesUnexportedImplementation(t *testing.T) {
	ctx := shapeContext(t, "unexported",
		fmt.Sprintf("%s=%s\n", shapeType, hexagonName))

	shapes, err := loader.LoadFactoriesFrom[Shape](newTestLoader(t), ctx, resolver.None())
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Equal(t, 6, shapes[0].Sides())
}

func TestLoadFactoriesPrefersExportedConstructor(t *testing.T) {
	ctx := shapeContext(t, "selection",
		fmt.Sprintf("%s=%s\n", shapeType, pentagonName))

	shapes, err := loader.LoadFactoriesFrom[Shape](newTestLoader(t), ctx, resolver.None())
	require.NoError(t, err)
	require.Len(t, shapes, 1)

	pentagon, ok := shapes[0].(Pentagon)
	require.True(t, ok)
	assert.Equal(t, "public", pentagon.Origin)
}

func TestLoadFactoriesUnknownImplementationName(t *testing.T) {
	ctx := shapeContext(t, "unknown-impl",
		fmt.Sprintf("%s=%s\n", shapeType, "loader_test.Ghost"))

	_, err := loader.LoadFactoriesFrom[Shape](newTestLoader(t), ctx, resolver.None())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownType)
	assert.Contains(t, err.Error(),
		fmt.Sprintf("unable to instantiate factory implementation [loader_test.Ghost] for factory type [%s]", shapeType))
}

func TestLoadFactoriesTypeMismatchAborts(t *testing.T) {
	// Circle would succeed, but the widget mismatch must abort the whole
	// call with no partial result.
	ctx := shapeContext(t, "mismatch",
		fmt.Sprintf("%s=%s,%s\n", shapeType, circleName, widgetName))

	shapes, err := loader.LoadFactoriesFrom[Shape](newTestLoader(t), ctx, resolver.None())
	require.Error(t, err)
	assert.Nil(t, shapes)
	assert.ErrorIs(t, err, errors.ErrTypeMismatch)
	assert.Contains(t, err.Error(), widgetName)
	assert.Contains(t, err.Error(), shapeType)
}

func TestLoadFactoriesConstructorError(t *testing.T) {
	ctx := shapeContext(t, "ctor-error",
		fmt.Sprintf("%s=%s\n", shapeType, failingName))

	_, err := loader.LoadFactoriesFrom[Shape](newTestLoader(t), ctx, resolver.None())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInstantiationFailed)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(),
		fmt.Sprintf("unable to instantiate factory implementation [%s] for factory type [%s]", failingName, shapeType))
}

func TestLoadFactoriesReusesSelectedConstructor(t *testing.T) {
	l := newTestLoader(t)
	ctx := shapeContext(t, "reuse",
		fmt.Sprintf("%s=%s\n", shapeType, squareName))

	first, err := loader.LoadFactoriesFrom[Shape](l, ctx, resolver.Of("a"))
	require.NoError(t, err)
	second, err := loader.LoadFactoriesFrom[Shape](l, ctx, resolver.Of("b"))
	require.NoError(t, err)

	assert.Equal(t, "a", first[0].(Square).Label)
	assert.Equal(t, "b", second[0].(Square).Label)
}

func TestDefaultLoaderFacade(t *testing.T) {
	t.Cleanup(loader.ResetCache)

	ctx := shapeContext(t, "default",
		fmt.Sprintf("%s=%s\n", shapeType, circleName))

	names, err := loader.LoadFactoryNames(shapeType, ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{circleName}, names)

	shapes, err := loader.LoadFactories[Shape](ctx, resolver.None())
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Equal(t, 0, shapes[0].Sides())

	loader.ResetCache()
	assert.NotNil(t, loader.Default())
}
