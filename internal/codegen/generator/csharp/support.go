package csharp

import (
	"fmt"
	"io"
	"text/template"
)

const objectTemplate = `{{writeFileHeader}}using System;

namespace {{.Namespace}}
{
	/// <summary>
	/// Base class of every wrapper: owns the native handle of one domain object.
	/// </summary>
	public class {{.BaseClass}}
	{
		public IntPtr Handle { get; }

		public {{.BaseClass}}(IntPtr handle)
		{
			Handle = handle;
		}
	}
}
`

const utilTemplate = `{{writeFileHeader}}using System;
using System.Runtime.InteropServices;

namespace {{.Namespace}}
{
	internal static class Util
	{
		/// <summary>
		/// Copies a NUL-terminated UTF-8 string owned by the native library.
		/// </summary>
		public static string build_string(IntPtr ptr)
		{
			if (ptr == IntPtr.Zero)
				return null;
			return Marshal.PtrToStringUTF8(ptr);
		}

		public static string build_string(string str)
		{
			return str;
		}
	}
}
`

const objectManagerTemplate = `{{writeFileHeader}}using System;
using System.Collections.Generic;

namespace {{.Namespace}}
{
	/// <summary>
	/// Identity store for wrappers: exactly one wrapper instance per native
	/// handle for the lifetime of a session. Wrappers are created on first
	/// resolution and reused afterwards.
	/// </summary>
	public sealed class ObjectManager : IDisposable
	{
		[ThreadStatic]
		private static ObjectManager _current;

		private readonly Dictionary<IntPtr, {{.BaseClass}}> _objects = new Dictionary<IntPtr, {{.BaseClass}}>();
		private bool _disposed;

		private ObjectManager()
		{
		}

		/// <summary>
		/// Starts a session on the calling thread. Wrappers resolved through
		/// GetObject belong to it until EndSession.
		/// </summary>
		public static ObjectManager BeginSession()
		{
			if (_current != null)
				throw new InvalidOperationException("an ObjectManager session is already active");
			_current = new ObjectManager();
			return _current;
		}

		/// <summary>
		/// Ends the active session and forgets every wrapper it created.
		/// </summary>
		public static void EndSession()
		{
			_current?.Dispose();
		}

		public static {{.BaseClass}} GetObject(IntPtr handle, Type type)
		{
			if (handle == IntPtr.Zero)
				return null;
			if (_current == null)
				throw new InvalidOperationException("no active ObjectManager session");
			return _current.Resolve(handle, type);
		}

		public int Count => _objects.Count;

		private {{.BaseClass}} Resolve(IntPtr handle, Type type)
		{
			ThrowIfDisposed();
			if (_objects.TryGetValue(handle, out var existing))
				return existing;
			var created = ({{.BaseClass}})Activator.CreateInstance(type, handle);
			_objects[handle] = created;
			return created;
		}

		private void ThrowIfDisposed()
		{
			if (_disposed) throw new ObjectDisposedException(nameof(ObjectManager));
		}

		public void Dispose()
		{
			if (_disposed) return;
			_disposed = true;
			_objects.Clear();
			if (ReferenceEquals(_current, this))
				_current = null;
		}
	}
}
`

// supportFile is a runtime source every generated class depends on.
type supportFile struct {
	fileName func(Options) string
	tmpl     *template.Template
}

func newSupportFile(name string, fileName func(Options) string, text string) supportFile {
	tmpl := template.Must(template.New(name).Funcs(template.FuncMap{
		"writeFileHeader": writeFileHeader,
	}).Parse(text))
	return supportFile{fileName: fileName, tmpl: tmpl}
}

func fixedName(name string) func(Options) string {
	return func(Options) string { return name }
}

var supportFiles = []supportFile{
	newSupportFile("base", func(o Options) string { return o.BaseClass + ".cs" }, objectTemplate),
	newSupportFile("util", fixedName("Util.cs"), utilTemplate),
	newSupportFile("objectManager", fixedName("ObjectManager.cs"), objectManagerTemplate),
}

func (f supportFile) render(w io.Writer, opts Options) error {
	if err := f.tmpl.Execute(w, opts); err != nil {
		return fmt.Errorf("execute %s template: %w", f.tmpl.Name(), err)
	}
	return nil
}
